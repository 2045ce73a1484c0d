package services

import (
	"context"

	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/logger"
	"github.com/inkvoice/inkvoice/internal/storage"
	"github.com/inkvoice/inkvoice/internal/tts"
	"github.com/inkvoice/inkvoice/internal/websocket"
)

// DefaultVoice is used when a synthesis request names no voice handle.
const DefaultVoice = "nova"

// DefaultSpeed is the pass-through synthesis speed.
const DefaultSpeed = 1.0

// SpeechService runs the two-phase synthesis pipeline: synthesize fully,
// then persist. Storage is never attempted on a failed synthesis, and a
// failed store commits nothing, so there is no partial state to clean up.
type SpeechService struct {
	synth  tts.Synthesizer
	store  *storage.Store
	hub    *websocket.Hub
	logger *logger.Log
}

func NewSpeechService(synth tts.Synthesizer, store *storage.Store, hub *websocket.Hub) *SpeechService {
	return &SpeechService{
		synth:  synth,
		store:  store,
		hub:    hub,
		logger: logger.New(),
	}
}

// SynthesizeToURL converts text to audio and returns the durable URL.
func (s *SpeechService) SynthesizeToURL(ctx context.Context, text, voiceHandle string, speed float64) (string, error) {
	if text == "" {
		return "", apperr.Validation("text is required")
	}
	if voiceHandle == "" {
		voiceHandle = DefaultVoice
	}
	if speed == 0 {
		speed = DefaultSpeed
	}

	s.publish(websocket.Event{Type: "synthesis_started", Voice: voiceHandle})

	audio, err := s.synth.Synthesize(ctx, text, voiceHandle, speed)
	if err != nil {
		s.publish(websocket.Event{Type: "synthesis_failed", Voice: voiceHandle, Error: err.Error()})
		return "", err
	}

	url, err := s.store.Store(audio.Bytes, audio.MIME)
	if err != nil {
		s.publish(websocket.Event{Type: "synthesis_failed", Voice: voiceHandle, Error: err.Error()})
		return "", err
	}

	s.publish(websocket.Event{Type: "synthesis_completed", Voice: voiceHandle, AudioURL: url})
	return url, nil
}

// SignURL issues a time-boxed signed URL for a stored asset.
func (s *SpeechService) SignURL(fileURI string, ttlSeconds int) (string, error) {
	return s.store.ResolveSignedURL(fileURI, ttlSeconds)
}

func (s *SpeechService) publish(event websocket.Event) {
	if s.hub != nil {
		s.hub.Publish(event)
	}
}
