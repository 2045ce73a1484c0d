package playback

import "context"

// AudioPlatform is the capability interface the controller plays through.
// Variants are injected at construction instead of the controller
// inspecting its environment.
type AudioPlatform interface {
	Start(ctx context.Context, audioURL string) (AudioSession, error)
}

// AudioSession is one in-flight playback. Pause is idempotent, and Done
// is closed once the session ends, whether naturally or by Pause.
type AudioSession interface {
	Pause()
	Done() <-chan struct{}
}

// NoopPlatform discards playback requests. Used headless and in tests.
type NoopPlatform struct{}

func (NoopPlatform) Start(_ context.Context, _ string) (AudioSession, error) {
	done := make(chan struct{})
	close(done)
	return noopSession{done: done}, nil
}

type noopSession struct {
	done chan struct{}
}

func (noopSession) Pause() {}

func (s noopSession) Done() <-chan struct{} { return s.done }
