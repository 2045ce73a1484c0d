package catalog

import (
	"context"

	"github.com/inkvoice/inkvoice/internal/models"
)

// OpenAILister serves the published OpenAI voice set. OpenAI exposes no
// listing endpoint, so the records are curated here; label fields the
// vendor does not document stay empty.
type OpenAILister struct{}

func NewOpenAILister() *OpenAILister { return &OpenAILister{} }

func (l *OpenAILister) Provider() string { return "openai" }

var openAIVoices = []models.ProviderVoiceRecord{
	{VoiceID: "alloy", Name: "Alloy", Category: "premade", Description: "Balanced, neutral tone", Gender: "neutral"},
	{VoiceID: "echo", Name: "Echo", Category: "premade", Description: "Clear male voice", Gender: "male"},
	{VoiceID: "fable", Name: "Fable", Category: "premade", Description: "Expressive storyteller", Gender: "male", UseCase: "narration"},
	{VoiceID: "onyx", Name: "Onyx", Category: "premade", Description: "Deep male voice", Gender: "male"},
	{VoiceID: "nova", Name: "Nova", Category: "premade", Description: "Bright female voice", Gender: "female"},
	{VoiceID: "shimmer", Name: "Shimmer", Category: "premade", Description: "Soft female voice", Gender: "female"},
}

func (l *OpenAILister) ListVoices(_ context.Context) ([]models.ProviderVoiceRecord, error) {
	records := make([]models.ProviderVoiceRecord, len(openAIVoices))
	copy(records, openAIVoices)
	return records, nil
}
