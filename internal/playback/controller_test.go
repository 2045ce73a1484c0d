package playback

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/inkvoice/inkvoice/internal/models"
)

type fakeSession struct {
	paused int
	done   chan struct{}
}

func (s *fakeSession) Pause() {
	if s.paused == 0 {
		close(s.done)
	}
	s.paused++
}

func (s *fakeSession) Done() <-chan struct{} { return s.done }

type fakePlatform struct {
	sessions []*fakeSession
	startErr error
}

func (p *fakePlatform) Start(_ context.Context, _ string) (AudioSession, error) {
	if p.startErr != nil {
		return nil, p.startErr
	}
	s := &fakeSession{done: make(chan struct{})}
	p.sessions = append(p.sessions, s)
	return s, nil
}

type fakeGenerator struct {
	calls int
	url   string
	err   error
}

func (g *fakeGenerator) GenerateAudioURL(_ context.Context, frame *models.Frame) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.url, nil
}

func TestPlayGeneratesThenCachesURL(t *testing.T) {
	platform := &fakePlatform{}
	gen := &fakeGenerator{url: "http://host/static/audio/a.mp3"}
	c := NewController(platform, gen)
	frame := &models.Frame{ID: "f1", Dialogue: "hello"}

	// First click: no cached URL, synthesis runs, ends up playing.
	if err := c.Play(context.Background(), frame); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if c.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", c.State())
	}
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
	if frame.AudioURL != gen.url {
		t.Errorf("frame audio_url not cached: %q", frame.AudioURL)
	}

	// Second click: stop.
	c.Stop()
	if c.State() != StateIdle {
		t.Fatalf("state after stop = %v, want idle", c.State())
	}

	// Third click: plays from cache without a new synthesis call.
	if err := c.Play(context.Background(), frame); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if c.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", c.State())
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1 (cache reuse)", gen.calls)
	}
}

func TestPlaySessionMemoSurvivesClearedFrameSlot(t *testing.T) {
	platform := &fakePlatform{}
	gen := &fakeGenerator{url: "http://host/static/audio/a.mp3"}
	c := NewController(platform, gen)
	frame := &models.Frame{ID: "f1", Dialogue: "hello"}

	if err := c.Play(context.Background(), frame); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	c.Stop()

	// Even if the frame's own slot is dropped, the in-memory URL resolved
	// this session is reused.
	frame.AudioURL = ""
	if err := c.Play(context.Background(), frame); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}
}

func TestPlaySingleFlight(t *testing.T) {
	platform := &fakePlatform{}
	gen := &fakeGenerator{url: "http://host/static/audio/a.mp3"}
	c := NewController(platform, gen)

	first := &models.Frame{ID: "f1", Dialogue: "one"}
	second := &models.Frame{ID: "f2", Dialogue: "two"}

	if err := c.Play(context.Background(), first); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if err := c.Play(context.Background(), second); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if len(platform.sessions) != 2 {
		t.Fatalf("sessions started = %d, want 2", len(platform.sessions))
	}
	if platform.sessions[0].paused == 0 {
		t.Error("prior session was not paused before the new one started")
	}
	if platform.sessions[1].paused != 0 {
		t.Error("active session was paused")
	}
}

func TestPlayFailureReturnsToIdle(t *testing.T) {
	platform := &fakePlatform{}
	gen := &fakeGenerator{err: errors.New("provider exploded")}
	c := NewController(platform, gen)
	frame := &models.Frame{ID: "f1", Dialogue: "hello"}

	if err := c.Play(context.Background(), frame); err == nil {
		t.Fatal("Play() succeeded, want error")
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle (never a stuck loading)", c.State())
	}
	if c.LastError() == "" {
		t.Error("LastError() empty after failure")
	}
}

// gateGenerator blocks every generation until release is closed, so tests
// can hold several Play calls in flight at once.
type gateGenerator struct {
	inFlight chan struct{}
	release  chan struct{}
}

func (g *gateGenerator) GenerateAudioURL(_ context.Context, frame *models.Frame) (string, error) {
	g.inFlight <- struct{}{}
	<-g.release
	return "http://host/static/audio/" + frame.ID + ".mp3", nil
}

func TestConcurrentPlayKeepsOneActiveSession(t *testing.T) {
	platform := &fakePlatform{}
	gen := &gateGenerator{inFlight: make(chan struct{}, 2), release: make(chan struct{})}
	c := NewController(platform, gen)

	var wg sync.WaitGroup
	for _, frame := range []*models.Frame{
		{ID: "f1", Dialogue: "one"},
		{ID: "f2", Dialogue: "two"},
	} {
		frame := frame
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Play(context.Background(), frame)
		}()
	}

	// Both generations in flight before either can start a session.
	<-gen.inFlight
	<-gen.inFlight
	close(gen.release)
	wg.Wait()

	active := 0
	for _, s := range platform.sessions {
		if s.paused == 0 {
			active++
		}
	}
	if active > 1 {
		t.Fatalf("%d sessions concurrently active, want at most 1", active)
	}
	if c.State() != StatePlaying {
		t.Errorf("state = %v, want playing", c.State())
	}
}

func TestStopDuringLoadingStaysIdle(t *testing.T) {
	platform := &fakePlatform{}
	gen := &gateGenerator{inFlight: make(chan struct{}, 1), release: make(chan struct{})}
	c := NewController(platform, gen)
	frame := &models.Frame{ID: "f1", Dialogue: "hello"}

	done := make(chan error, 1)
	go func() { done <- c.Play(context.Background(), frame) }()

	<-gen.inFlight
	c.Stop()
	close(gen.release)
	if err := <-done; err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle after stop during loading", c.State())
	}
	if len(platform.sessions) != 0 {
		t.Errorf("sessions started = %d, want 0", len(platform.sessions))
	}
	// The generated URL stays cached for the next click.
	if frame.AudioURL == "" {
		t.Error("generated url was not cached")
	}
}

func TestWaitUnblocksWhenSessionEnds(t *testing.T) {
	platform := &fakePlatform{}
	gen := &fakeGenerator{url: "http://host/static/audio/a.mp3"}
	c := NewController(platform, gen)
	frame := &models.Frame{ID: "f1", Dialogue: "hello"}

	if err := c.Play(context.Background(), frame); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	go platform.sessions[0].Pause()
	c.Wait(context.Background())

	// Nothing playing: Wait must not block.
	c.Stop()
	c.Wait(context.Background())
}

func TestPlayEmptyFrameIsNoop(t *testing.T) {
	platform := &fakePlatform{}
	gen := &fakeGenerator{url: "http://host/a.mp3"}
	c := NewController(platform, gen)

	frame := &models.Frame{ID: "f1"}
	if err := c.Play(context.Background(), frame); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
	if gen.calls != 0 || len(platform.sessions) != 0 {
		t.Error("empty frame triggered synthesis or playback")
	}
}
