package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"

	"github.com/inkvoice/inkvoice/config"
	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/logger"
)

// OpenAISynthesizer calls the OpenAI speech endpoint and returns MP3 bytes.
type OpenAISynthesizer struct {
	client *openai.Client
	model  string
	logger *logger.Log
}

func NewOpenAISynthesizer(cfg *config.OpenAIConfig) *OpenAISynthesizer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = string(openai.TTSModel1)
	}

	return &OpenAISynthesizer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		logger: logger.New(),
	}
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text, voiceHandle string, speed float64) (*Audio, error) {
	text = TruncateText(text)
	speed = ClampSpeed(speed)

	s.logger.Debugf("openai tts request [voice:%s, speed:%.2f, chars:%d]", voiceHandle, speed, len([]rune(text)))

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.SpeechVoice(voiceHandle),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          speed,
	})
	if err != nil {
		return nil, apperr.Provider("openai speech synthesis failed", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, apperr.Provider("failed reading openai audio stream", err)
	}
	if len(audio) == 0 {
		return nil, apperr.Provider("empty audio content received from OpenAI", nil)
	}

	s.logger.Debug(fmt.Sprintf("generated %d bytes of MP3 audio", len(audio)))
	return &Audio{Bytes: audio, MIME: MIMEMpeg}, nil
}

func (s *OpenAISynthesizer) Name() string {
	return "OpenAI Text-to-Speech"
}
