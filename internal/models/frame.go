package models

import "time"

// Frame is a single dialogue/sound-effect unit whose generated audio may be
// cached. AudioURL is a plain cache slot: once set it is served as-is and is
// not tied to the dialogue text that produced it. Editing the dialogue does
// not invalidate it; regeneration is a manual step.
type Frame struct {
	ID          string    `json:"id" db:"id"`
	Dialogue    string    `json:"dialogue,omitempty" db:"dialogue"`
	SoundEffect string    `json:"sound_effect,omitempty" db:"sound_effect"`
	AudioURL    string    `json:"audio_url,omitempty" db:"audio_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Synthesizable reports whether the frame has any content worth sending to
// a TTS provider. A frame with neither dialogue nor sound effect is always
// a no-op for synthesis and playback.
func (f *Frame) Synthesizable() bool {
	return f.Dialogue != "" || f.SoundEffect != ""
}

// SpeechText returns the text submitted to synthesis: the dialogue when
// present, otherwise the sound-effect description.
func (f *Frame) SpeechText() string {
	if f.Dialogue != "" {
		return f.Dialogue
	}
	return f.SoundEffect
}
