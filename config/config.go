package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Tts        TtsConfig        `mapstructure:"tts"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Google     GoogleConfig     `mapstructure:"google"`
	ElevenLabs ElevenLabsConfig `mapstructure:"elevenlabs"`
	Storage    StorageConfig    `mapstructure:"storage"`
}

type ServerConfig struct {
	Port           string `mapstructure:"port"`
	RequestTimeout int    `mapstructure:"request_timeout"` // seconds, applied at the handler boundary
}

type AuthConfig struct {
	SessionSecret string `mapstructure:"session_secret"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// TTS provider selection
type TtsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Provider string `mapstructure:"provider"` // "openai" or "google"
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"` // Optional, defaults to OpenAI API
	Model   string `mapstructure:"model"`
	Voice   string `mapstructure:"voice"` // default voice handle
}

type GoogleConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	LanguageCode    string `mapstructure:"language_code"`
}

type ElevenLabsConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type StorageConfig struct {
	Dir           string `mapstructure:"dir"`      // on-disk audio directory
	BaseURL       string `mapstructure:"base_url"` // public prefix for durable URLs
	SigningSecret string `mapstructure:"signing_secret"`
	SignedURLTTL  int    `mapstructure:"signed_url_ttl"` // seconds
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.BindEnv("openai.api_key", "INKVOICE_OPENAI_API_KEY")
	viper.BindEnv("elevenlabs.api_key", "INKVOICE_ELEVENLABS_API_KEY")
	viper.BindEnv("google.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.request_timeout", 30)

	viper.SetDefault("auth.session_secret", "change-this-in-production")
	viper.SetDefault("database.path", "./inkvoice.db")

	viper.SetDefault("tts.enabled", true)
	viper.SetDefault("tts.provider", "openai")

	viper.SetDefault("openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("openai.model", "tts-1")
	viper.SetDefault("openai.voice", "nova")

	viper.SetDefault("google.language_code", "en-US")

	viper.SetDefault("elevenlabs.base_url", "https://api.elevenlabs.io")

	viper.SetDefault("storage.dir", "./static/audio")
	viper.SetDefault("storage.base_url", "http://localhost:8080")
	viper.SetDefault("storage.signed_url_ttl", 1800)

	// Allow environment variables
	viper.SetEnvPrefix("INKVOICE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found, use defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
