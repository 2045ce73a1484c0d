package playback

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hajimehoshi/go-mp3"
	"github.com/hajimehoshi/oto/v2"

	"github.com/inkvoice/inkvoice/internal/logger"
)

// OtoPlatform plays MP3 audio URLs through the system audio device.
type OtoPlatform struct {
	httpClient *http.Client
	logger     *logger.Log
}

func NewOtoPlatform() *OtoPlatform {
	return &OtoPlatform{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.New(),
	}
}

func (p *OtoPlatform) Start(ctx context.Context, audioURL string) (AudioSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed building audio request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed fetching audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("audio fetch returned %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading audio body: %w", err)
	}

	decoder, err := mp3.NewDecoder(bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("mp3 decoder: %w", err)
	}

	otoCtx, readyChan, err := oto.NewContext(decoder.SampleRate(), 2, 2)
	if err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	<-readyChan

	player := otoCtx.NewPlayer(decoder)
	player.Play()

	session := &otoSession{player: player, doneChan: make(chan struct{})}
	go session.waitForEnd(ctx)
	return session, nil
}

type otoSession struct {
	mu       sync.Mutex
	player   oto.Player
	done     bool
	doneChan chan struct{}
}

// Pause stops playback and releases the player. Safe to call more than
// once, and safe after natural end of audio.
func (s *otoSession) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	s.player.Close()
	close(s.doneChan)
}

func (s *otoSession) Done() <-chan struct{} { return s.doneChan }

func (s *otoSession) waitForEnd(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Pause()
			return
		case <-ticker.C:
			s.mu.Lock()
			finished := s.done || !s.player.IsPlaying()
			s.mu.Unlock()
			if finished {
				s.Pause()
				return
			}
		}
	}
}
