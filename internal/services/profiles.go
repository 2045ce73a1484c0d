package services

import (
	"context"

	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/models"
	"github.com/inkvoice/inkvoice/internal/voices"
)

// ProfileService creates voice profiles through the sample-synthesis step:
// the description is spoken once, the sample is stored, and the profile is
// saved with the resulting sample URL.
type ProfileService struct {
	store        *voices.Store
	speech       *SpeechService
	provider     string
	defaultVoice string
}

func NewProfileService(store *voices.Store, speech *SpeechService, provider, defaultVoice string) *ProfileService {
	if defaultVoice == "" {
		defaultVoice = DefaultVoice
	}
	return &ProfileService{
		store:        store,
		speech:       speech,
		provider:     provider,
		defaultVoice: defaultVoice,
	}
}

// GenerateProfile synthesizes a sample for the description and persists a
// new profile. Sample synthesis happens before the insert, so a provider
// or upload failure creates no profile row.
func (s *ProfileService) GenerateProfile(ctx context.Context, name, description, gender, personality string) (*models.VoiceProfile, error) {
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if description == "" {
		return nil, apperr.Validation("description is required")
	}
	if gender == "" {
		gender = models.GenderNeutral
	}

	sampleURL, err := s.speech.SynthesizeToURL(ctx, description, s.defaultVoice, DefaultSpeed)
	if err != nil {
		return nil, err
	}

	profile := &models.VoiceProfile{
		Name:           name,
		Gender:         gender,
		Personality:    personality,
		Category:       models.DefaultVoiceCategory,
		Provider:       s.provider,
		ProviderVoice:  s.defaultVoice,
		SampleAudioURL: sampleURL,
	}
	if err := s.store.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
