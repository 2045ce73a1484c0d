package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/inkvoice/inkvoice/internal/catalog"
	"github.com/inkvoice/inkvoice/internal/logger"
	"github.com/inkvoice/inkvoice/internal/models"
	"github.com/inkvoice/inkvoice/internal/services"
	"github.com/inkvoice/inkvoice/internal/voices"
)

// Handler bundles the voice, speech and frame endpoints.
type Handler struct {
	profiles       *voices.Store
	profileService *services.ProfileService
	speech         *services.SpeechService
	frames         *services.FrameService
	catalog        *catalog.Catalog
	requestTimeout time.Duration
	logger         *logger.Log
}

func NewHandler(profiles *voices.Store, profileService *services.ProfileService, speech *services.SpeechService, frames *services.FrameService, cat *catalog.Catalog, requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	return &Handler{
		profiles:       profiles,
		profileService: profileService,
		speech:         speech,
		frames:         frames,
		catalog:        cat,
		requestTimeout: requestTimeout,
		logger:         logger.New(),
	}
}

type assignVoiceRequest struct {
	CharacterID string `json:"character_id"`
	Gender      string `json:"gender"`
	AgeRange    string `json:"age_range"`
	Personality string `json:"personality"`
}

type assignVoiceResponse struct {
	VoiceID string               `json:"voice_id"`
	Voice   *models.VoiceProfile `json:"voice"`
	Message string               `json:"message"`
}

// POST /api/v1/voices/assign - Match a character to a voice profile
func (h *Handler) AssignVoice(w http.ResponseWriter, r *http.Request) {
	var req assignVoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}
	if req.CharacterID == "" {
		writeValidationError(w, "character_id is required")
		return
	}
	if req.Gender == "" {
		writeValidationError(w, "gender is required")
		return
	}

	profileCatalog, err := h.profiles.List()
	if err != nil {
		writeError(w, err)
		return
	}

	assignment, err := voices.Assign(models.Character{
		Gender:      req.Gender,
		AgeRange:    req.AgeRange,
		Personality: req.Personality,
	}, profileCatalog)
	if err != nil {
		writeError(w, err)
		return
	}

	message := fmt.Sprintf("assigned voice %q to character %s", assignment.Profile.Name, req.CharacterID)
	if assignment.Fallback {
		message += " (gender-only fallback)"
	}

	writeJSON(w, http.StatusOK, assignVoiceResponse{
		VoiceID: assignment.Profile.ID,
		Voice:   assignment.Profile,
		Message: message,
	})
}

type synthesizeRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed"`
}

// POST /api/v1/tts/synthesize - Text to durable audio URL
func (h *Handler) SynthesizeSpeech(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}
	if req.Text == "" {
		writeValidationError(w, "text is required")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	url, err := h.speech.SynthesizeToURL(ctx, req.Text, req.Voice, req.Speed)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"audio_url": url})
}

type generateProfileRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Gender      string `json:"gender"`
	Personality string `json:"personality"`
}

// POST /api/v1/voices/generate - Create a profile with a synthesized sample
func (h *Handler) GenerateVoiceProfile(w http.ResponseWriter, r *http.Request) {
	var req generateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	profile, err := h.profileService.GenerateProfile(ctx, req.Name, req.Description, req.Gender, req.Personality)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

// GET /api/v1/voices/providers/{provider} - Normalized upstream listing
func (h *Handler) ListProviderVoices(w http.ResponseWriter, r *http.Request) {
	provider := mux.Vars(r)["provider"]

	ctx, cancel := h.requestContext(r)
	defer cancel()

	records, err := h.catalog.ListVoices(ctx, provider)
	if err != nil {
		writeError(w, err)
		return
	}

	if query := r.URL.Query().Get("search"); query != "" {
		records = catalog.SearchVoices(records, query)
	}

	writeJSON(w, http.StatusOK, map[string]any{"voices": records})
}

type signURLRequest struct {
	FileURI   string `json:"file_uri"`
	ExpiresIn int    `json:"expires_in_seconds"`
}

// POST /api/v1/storage/sign - Time-boxed signed URL for a private asset
func (h *Handler) SignURL(w http.ResponseWriter, r *http.Request) {
	var req signURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}

	signed, err := h.speech.SignURL(req.FileURI, req.ExpiresIn)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"signed_url": signed})
}

type frameAudioRequest struct {
	Voice string  `json:"voice"`
	Speed float64 `json:"speed"`
}

type frameAudioResponse struct {
	AudioURL string `json:"audio_url"`
	Cached   bool   `json:"cached"`
}

// POST /api/v1/frames/{id}/audio - Get-or-create the frame's cached audio
func (h *Handler) FrameAudio(w http.ResponseWriter, r *http.Request) {
	frameID := mux.Vars(r)["id"]

	// The body is optional, but when present it must parse.
	var req frameAudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeValidationError(w, "invalid request body")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	url, cached, err := h.frames.EnsureAudio(ctx, frameID, req.Voice, req.Speed)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, frameAudioResponse{AudioURL: url, Cached: cached})
}

// POST /api/v1/frames - Create a dialogue frame
func (h *Handler) CreateFrame(w http.ResponseWriter, r *http.Request) {
	var frame models.Frame
	if err := json.NewDecoder(r.Body).Decode(&frame); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}
	frame.ID = ""
	frame.AudioURL = ""

	if err := h.frames.CreateFrame(&frame); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, frame)
}

// GET /api/v1/frames/{id}
func (h *Handler) GetFrame(w http.ResponseWriter, r *http.Request) {
	frame, err := h.frames.GetFrame(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

// GET /api/v1/voices - Curated profile catalog
func (h *Handler) ListVoiceProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"voices": profiles})
}

// Every provider-bound request runs under one deadline so a slow vendor
// cannot hold a handler open indefinitely.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.requestTimeout)
}

// RegisterRoutes mounts every endpoint on the authenticated subrouter.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/voices", h.ListVoiceProfiles).Methods("GET")
	r.HandleFunc("/voices/assign", h.AssignVoice).Methods("POST")
	r.HandleFunc("/voices/generate", h.GenerateVoiceProfile).Methods("POST")
	r.HandleFunc("/voices/providers/{provider}", h.ListProviderVoices).Methods("GET")
	r.HandleFunc("/tts/synthesize", h.SynthesizeSpeech).Methods("POST")
	r.HandleFunc("/storage/sign", h.SignURL).Methods("POST")
	r.HandleFunc("/frames", h.CreateFrame).Methods("POST")
	r.HandleFunc("/frames/{id}", h.GetFrame).Methods("GET")
	r.HandleFunc("/frames/{id}/audio", h.FrameAudio).Methods("POST")
}
