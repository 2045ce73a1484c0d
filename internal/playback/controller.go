// Package playback drives client-side audio for dialogue frames: request,
// cache, play. One controller owns at most one active audio session.
package playback

import (
	"context"
	"sync"

	"github.com/inkvoice/inkvoice/internal/logger"
	"github.com/inkvoice/inkvoice/internal/models"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	default:
		return "idle"
	}
}

// AudioGenerator produces a durable audio URL for a frame. On the server
// this is the synthesize-then-store pipeline.
type AudioGenerator interface {
	GenerateAudioURL(ctx context.Context, frame *models.Frame) (string, error)
}

// Controller is the playback state machine for frames. Cached URLs (the
// frame's own audio_url slot or URLs resolved earlier this session) are
// played without re-invoking synthesis. The cache is keyed by frame id and
// is not content-addressed: editing a frame's dialogue does not invalidate
// audio generated from the old text.
type Controller struct {
	platform  AudioPlatform
	generator AudioGenerator
	logger    *logger.Log

	mu       sync.Mutex
	state    State
	session  AudioSession
	seq      uint64
	urlCache map[string]string
	lastErr  string
}

func NewController(platform AudioPlatform, generator AudioGenerator) *Controller {
	return &Controller{
		platform:  platform,
		generator: generator,
		logger:    logger.New(),
		urlCache:  make(map[string]string),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the human-readable message from the most recent
// failed play request, empty when the last request succeeded.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Play starts playback for the frame. Any previously active session is
// stopped first, so two sessions never overlap. Frames without dialogue or
// sound effect are a no-op.
func (c *Controller) Play(ctx context.Context, frame *models.Frame) error {
	if frame == nil || !frame.Synthesizable() {
		return nil
	}

	c.mu.Lock()
	c.stopSessionLocked()

	if url := c.cachedURLLocked(frame); url != "" {
		err := c.startSessionLocked(ctx, url)
		c.mu.Unlock()
		return err
	}

	c.state = StateLoading
	c.lastErr = ""
	seq := c.seq
	c.mu.Unlock()

	url, err := c.generator.GenerateAudioURL(ctx, frame)

	c.mu.Lock()
	defer c.mu.Unlock()

	// A Stop or newer Play while the lock was released supersedes this
	// request: keep the generated URL cached but start nothing.
	superseded := c.seq != seq

	if err != nil {
		if !superseded {
			c.state = StateIdle
			c.lastErr = err.Error()
		}
		c.logger.WithError(err).Warn("audio generation failed")
		return err
	}

	frame.AudioURL = url
	c.urlCache[frame.ID] = url
	if superseded {
		return nil
	}
	return c.startSessionLocked(ctx, url)
}

// Wait blocks until the active session finishes or ctx is cancelled.
// Returns immediately when nothing is playing.
func (c *Controller) Wait(ctx context.Context) {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()
	if session == nil {
		return
	}
	select {
	case <-session.Done():
	case <-ctx.Done():
	}
}

// Stop halts any active playback and returns to idle.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopSessionLocked()
}

func (c *Controller) cachedURLLocked(frame *models.Frame) string {
	if frame.AudioURL != "" {
		return frame.AudioURL
	}
	return c.urlCache[frame.ID]
}

func (c *Controller) startSessionLocked(ctx context.Context, url string) error {
	if c.session != nil {
		c.session.Pause()
		c.session = nil
	}
	session, err := c.platform.Start(ctx, url)
	if err != nil {
		c.state = StateIdle
		c.lastErr = err.Error()
		return err
	}
	c.session = session
	c.state = StatePlaying
	c.lastErr = ""
	return nil
}

func (c *Controller) stopSessionLocked() {
	c.seq++
	if c.session != nil {
		c.session.Pause()
		c.session = nil
	}
	c.state = StateIdle
}
