package catalog

import (
	"context"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/models"
)

// GoogleLister fetches the Google Cloud TTS voice listing. Google only
// reports name, language and SSML gender; the remaining label fields stay
// empty strings.
type GoogleLister struct {
	client       *texttospeech.Client
	languageCode string
}

func NewGoogleLister(client *texttospeech.Client, languageCode string) *GoogleLister {
	return &GoogleLister{client: client, languageCode: languageCode}
}

func (l *GoogleLister) Provider() string { return "google" }

func (l *GoogleLister) ListVoices(ctx context.Context) ([]models.ProviderVoiceRecord, error) {
	resp, err := l.client.ListVoices(ctx, &ttspb.ListVoicesRequest{LanguageCode: l.languageCode})
	if err != nil {
		return nil, apperr.Provider("google voice listing failed", err)
	}

	records := make([]models.ProviderVoiceRecord, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		records = append(records, models.ProviderVoiceRecord{
			VoiceID:     v.Name,
			Name:        v.Name,
			Category:    "premade",
			Description: "",
			Accent:      firstOrEmpty(v.LanguageCodes),
			Age:         "",
			Gender:      ssmlGenderTag(v.SsmlGender),
			UseCase:     "",
			PreviewURL:  "",
		})
	}
	return records, nil
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func ssmlGenderTag(g ttspb.SsmlVoiceGender) string {
	switch g {
	case ttspb.SsmlVoiceGender_MALE:
		return models.GenderMale
	case ttspb.SsmlVoiceGender_FEMALE:
		return models.GenderFemale
	case ttspb.SsmlVoiceGender_NEUTRAL:
		return models.GenderNeutral
	default:
		return ""
	}
}
