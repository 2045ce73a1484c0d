package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/database"
	"github.com/inkvoice/inkvoice/internal/models"
)

// FrameService owns frame persistence and the frame-level audio cache.
// The audio_url slot is get-or-create by frame id, not content-addressed:
// once a frame has audio, later dialogue edits keep serving the old audio
// until someone regenerates it on purpose.
type FrameService struct {
	db     *database.DB
	speech *SpeechService
}

func NewFrameService(db *database.DB, speech *SpeechService) *FrameService {
	return &FrameService{db: db, speech: speech}
}

// CreateFrame inserts a new dialogue frame.
func (s *FrameService) CreateFrame(frame *models.Frame) error {
	if frame.ID == "" {
		frame.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	frame.CreatedAt = now
	frame.UpdatedAt = now

	query := `INSERT INTO frames (id, dialogue, sound_effect, audio_url, created_at, updated_at)
	          VALUES (:id, :dialogue, :sound_effect, :audio_url, :created_at, :updated_at)`
	if _, err := s.db.NamedExec(query, frame); err != nil {
		return fmt.Errorf("failed to create frame: %w", err)
	}
	return nil
}

// GetFrame fetches a frame by id.
func (s *FrameService) GetFrame(id string) (*models.Frame, error) {
	var frame models.Frame
	err := s.db.Get(&frame, `SELECT * FROM frames WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.KindNotFound, "frame %q not found", id)
		}
		return nil, fmt.Errorf("failed to get frame: %w", err)
	}
	return &frame, nil
}

// EnsureAudio returns the frame's audio URL, synthesizing and persisting it
// only when the cache slot is empty. The second return reports a cache hit.
func (s *FrameService) EnsureAudio(ctx context.Context, frameID, voiceHandle string, speed float64) (string, bool, error) {
	frame, err := s.GetFrame(frameID)
	if err != nil {
		return "", false, err
	}

	if !frame.Synthesizable() {
		return "", false, apperr.Validation("frame has no dialogue or sound effect")
	}

	if frame.AudioURL != "" {
		return frame.AudioURL, true, nil
	}

	url, err := s.speech.SynthesizeToURL(ctx, frame.SpeechText(), voiceHandle, speed)
	if err != nil {
		return "", false, err
	}

	if err := s.setAudioURL(frame.ID, url); err != nil {
		return "", false, err
	}
	return url, false, nil
}

// GenerateAudioURL implements the playback generator over the frame cache.
func (s *FrameService) GenerateAudioURL(ctx context.Context, frame *models.Frame) (string, error) {
	url, _, err := s.EnsureAudio(ctx, frame.ID, "", 0)
	return url, err
}

func (s *FrameService) setAudioURL(frameID, url string) error {
	query := `UPDATE frames SET audio_url = ?, updated_at = ? WHERE id = ?`
	if _, err := s.db.Exec(query, url, time.Now().UTC(), frameID); err != nil {
		return fmt.Errorf("failed to cache frame audio url: %w", err)
	}
	return nil
}
