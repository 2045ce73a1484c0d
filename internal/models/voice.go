package models

import "time"

// Gender values used by voice profiles and characters.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderNeutral = "neutral"
)

// DefaultVoiceCategory is assigned to profiles created through the
// sample-generation pipeline.
const DefaultVoiceCategory = "ai_generated"

// VoiceProfile is a curated catalog entry describing a selectable synthetic
// voice. Created once, immutable afterwards except for metadata edits;
// never deleted by this service.
type VoiceProfile struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Gender         string    `json:"gender" db:"gender"`
	AgeRange       string    `json:"age_range,omitempty" db:"age_range"`
	Personality    string    `json:"personality,omitempty" db:"personality"`
	Category       string    `json:"category" db:"category"`
	Provider       string    `json:"provider" db:"provider"`
	ProviderVoice  string    `json:"provider_voice" db:"provider_voice"`
	SampleAudioURL string    `json:"sample_audio_url,omitempty" db:"sample_audio_url"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Character holds the three attributes voice assignment reads. The full
// character entity is owned by the surrounding project; only these fields
// matter here.
type Character struct {
	Gender      string `json:"gender"`
	AgeRange    string `json:"age_range,omitempty"`
	Personality string `json:"personality,omitempty"`
}

// ProviderVoiceRecord is the normalized shape of one upstream catalog entry.
// Every field is always present; labels the upstream omits are empty strings,
// so downstream code never branches on provider identity.
type ProviderVoiceRecord struct {
	VoiceID     string `json:"voice_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Accent      string `json:"accent"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	UseCase     string `json:"use_case"`
	PreviewURL  string `json:"preview_url"`
}
