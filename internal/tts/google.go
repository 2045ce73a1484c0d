package tts

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"

	"github.com/inkvoice/inkvoice/config"
	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/logger"
)

// GoogleSynthesizer calls Google Cloud Text-to-Speech. The voice handle is
// the full Google voice name (e.g. "en-US-Chirp-HD-F").
type GoogleSynthesizer struct {
	client       *texttospeech.Client
	languageCode string
	logger       *logger.Log
}

func NewGoogleSynthesizer(cfg *config.GoogleConfig) (*GoogleSynthesizer, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google TTS client: %w", err)
	}

	return &GoogleSynthesizer{
		client:       client,
		languageCode: cfg.LanguageCode,
		logger:       logger.New(),
	}, nil
}

// Extract language code from the voice name (e.g. "en-GB-Standard-D" -> "en-GB")
func (g *GoogleSynthesizer) extractLanguageCode(voiceName string) string {
	parts := strings.Split(voiceName, "-")
	if len(parts) >= 2 {
		return fmt.Sprintf("%s-%s", parts[0], parts[1])
	}
	if g.languageCode != "" {
		return g.languageCode
	}
	return "en-US"
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text, voiceHandle string, speed float64) (*Audio, error) {
	text = TruncateText(text)
	speed = ClampSpeed(speed)

	req := &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: text},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: g.extractLanguageCode(voiceHandle),
			Name:         voiceHandle,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding:   ttspb.AudioEncoding_MP3,
			SpeakingRate:    speed,
			SampleRateHertz: 22050,
		},
	}

	g.logger.Debugf("google tts request [voice:%s, speed:%.2f]", voiceHandle, speed)

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, apperr.Provider("google speech synthesis failed", err)
	}

	if len(resp.AudioContent) == 0 {
		return nil, apperr.Provider("empty audio content received from Google TTS", nil)
	}

	return &Audio{Bytes: resp.AudioContent, MIME: MIMEMpeg}, nil
}

func (g *GoogleSynthesizer) Name() string {
	return "Google Cloud Text-to-Speech"
}

func (g *GoogleSynthesizer) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
