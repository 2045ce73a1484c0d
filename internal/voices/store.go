package voices

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/database"
	"github.com/inkvoice/inkvoice/internal/models"
)

// Store persists the curated voice profile catalog.
type Store struct {
	db *database.DB
}

func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// List returns all voice profiles in insertion order. This order is the
// catalog order assignment is deterministic over.
func (s *Store) List() ([]models.VoiceProfile, error) {
	var profiles []models.VoiceProfile
	query := `SELECT id, name, gender, age_range, personality, category, provider, provider_voice, sample_audio_url, created_at
	          FROM voice_profiles ORDER BY created_at, id`
	if err := s.db.Select(&profiles, query); err != nil {
		return nil, fmt.Errorf("failed to list voice profiles: %w", err)
	}
	return profiles, nil
}

// Get fetches a single profile by id.
func (s *Store) Get(id string) (*models.VoiceProfile, error) {
	var profile models.VoiceProfile
	query := `SELECT id, name, gender, age_range, personality, category, provider, provider_voice, sample_audio_url, created_at
	          FROM voice_profiles WHERE id = ?`
	if err := s.db.Get(&profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.KindNotFound, "voice profile %q not found", id)
		}
		return nil, fmt.Errorf("failed to get voice profile: %w", err)
	}
	return &profile, nil
}

// Create inserts a new profile. Missing id and category are filled in.
func (s *Store) Create(profile *models.VoiceProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.Category == "" {
		profile.Category = models.DefaultVoiceCategory
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO voice_profiles (id, name, gender, age_range, personality, category, provider, provider_voice, sample_audio_url, created_at)
	          VALUES (:id, :name, :gender, :age_range, :personality, :category, :provider, :provider_voice, :sample_audio_url, :created_at)`
	if _, err := s.db.NamedExec(query, profile); err != nil {
		return fmt.Errorf("failed to create voice profile: %w", err)
	}
	return nil
}

// UpdateMetadata edits the mutable descriptive fields of an existing
// profile. The provider handle and sample audio are immutable here.
func (s *Store) UpdateMetadata(id, name, ageRange, personality string) error {
	query := `UPDATE voice_profiles SET name = ?, age_range = ?, personality = ? WHERE id = ?`
	res, err := s.db.Exec(query, name, ageRange, personality, id)
	if err != nil {
		return fmt.Errorf("failed to update voice profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.Newf(apperr.KindNotFound, "voice profile %q not found", id)
	}
	return nil
}
