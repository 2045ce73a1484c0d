package tts

import (
	"context"

	"github.com/inkvoice/inkvoice/config"
	"github.com/inkvoice/inkvoice/internal/apperr"
)

// Provider input limits. Text beyond MaxInputChars is truncated, not
// rejected; speed outside [MinSpeed, MaxSpeed] is clamped, not rejected.
const (
	MaxInputChars = 4096
	MinSpeed      = 0.25
	MaxSpeed      = 4.0
)

// MIMEMpeg is the output type for every provider in scope.
const MIMEMpeg = "audio/mpeg"

// Audio is raw synthesized audio with its declared MIME type.
type Audio struct {
	Bytes []byte
	MIME  string
}

// Synthesizer converts text to audio through one upstream TTS provider.
// A call is a single attempt: no retry, no caching. Identical inputs are
// re-synthesized every time; URL reuse is the caller's job.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceHandle string, speed float64) (*Audio, error)
	Name() string
}

// ClampSpeed forces speed into the provider's accepted interval.
func ClampSpeed(speed float64) float64 {
	if speed < MinSpeed {
		return MinSpeed
	}
	if speed > MaxSpeed {
		return MaxSpeed
	}
	return speed
}

// TruncateText cuts text to the provider's maximum input length.
func TruncateText(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxInputChars {
		return text
	}
	return string(runes[:MaxInputChars])
}

// NewFromConfig selects the synthesizer backend by configuration.
// A disabled or unconfigured TTS section yields the dummy backend so the
// rest of the service keeps running.
func NewFromConfig(cfg *config.Config) (Synthesizer, error) {
	if !cfg.Tts.Enabled {
		return NewDummySynthesizer(), nil
	}

	switch cfg.Tts.Provider {
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return NewDummySynthesizer(), nil
		}
		return NewOpenAISynthesizer(&cfg.OpenAI), nil
	case "google":
		return NewGoogleSynthesizer(&cfg.Google)
	default:
		return nil, apperr.Newf(apperr.KindValidation, "unknown tts provider %q", cfg.Tts.Provider)
	}
}
