package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/models"
)

// ElevenLabsLister fetches the account voice listing from the ElevenLabs API.
type ElevenLabsLister struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type elevenLabsVoicesResponse struct {
	Voices []elevenLabsVoice `json:"voices"`
}

type elevenLabsVoice struct {
	VoiceID     string            `json:"voice_id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Labels      map[string]string `json:"labels"`
	PreviewURL  string            `json:"preview_url"`
}

func NewElevenLabsLister(apiKey, baseURL string) *ElevenLabsLister {
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	return &ElevenLabsLister{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (l *ElevenLabsLister) Provider() string { return "elevenlabs" }

func (l *ElevenLabsLister) ListVoices(ctx context.Context) ([]models.ProviderVoiceRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/v1/voices", nil)
	if err != nil {
		return nil, apperr.Provider("failed building elevenlabs request", err)
	}
	req.Header.Set("xi-api-key", l.apiKey)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Provider("elevenlabs voice listing failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Provider("failed reading elevenlabs response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.Provider(fmt.Sprintf("elevenlabs returned %d: %s", resp.StatusCode, string(body)), nil)
	}

	var parsed elevenLabsVoicesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperr.Provider("failed decoding elevenlabs voice listing", err)
	}

	records := make([]models.ProviderVoiceRecord, 0, len(parsed.Voices))
	for _, v := range parsed.Voices {
		records = append(records, models.ProviderVoiceRecord{
			VoiceID:     v.VoiceID,
			Name:        v.Name,
			Category:    v.Category,
			Description: v.Description,
			Accent:      v.Labels["accent"],
			Age:         v.Labels["age"],
			Gender:      v.Labels["gender"],
			UseCase:     v.Labels["use case"],
			PreviewURL:  v.PreviewURL,
		})
	}
	return records, nil
}
