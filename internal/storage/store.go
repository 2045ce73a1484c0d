// Package storage persists generated audio as durable URLs and issues
// time-boxed signed URLs for private assets.
package storage

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/database"
	"github.com/inkvoice/inkvoice/internal/logger"
)

// PublicPathPrefix is where stored audio is served from.
const PublicPathPrefix = "/static/audio/"

// Asset is one committed audio object.
type Asset struct {
	ID        string    `json:"id" db:"id"`
	Object    string    `json:"object_name" db:"object_name"`
	MimeType  string    `json:"mime_type" db:"mime_type"`
	SizeBytes int64     `json:"size_bytes" db:"size_bytes"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Store writes audio bytes to the configured directory and records them in
// the audio_assets table. Synthesis must fully succeed before Store is
// called; Store itself commits nothing on failure, so no compensating
// cleanup is ever needed.
type Store struct {
	db      *database.DB
	dir     string
	baseURL string
	signer  *Signer
	logger  *logger.Log
}

func NewStore(db *database.DB, dir, baseURL string, signer *Signer) *Store {
	return &Store{
		db:      db,
		dir:     dir,
		baseURL: baseURL,
		signer:  signer,
		logger:  logger.New(),
	}
}

// Store persists audio bytes and returns the durable URL.
func (s *Store) Store(audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", apperr.Storage("refusing to store empty audio", nil)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", apperr.Storage("failed to create audio directory", err)
	}

	object := uuid.New().String() + extensionFor(mimeType)
	finalPath := filepath.Join(s.dir, object)

	// Write to a temp file first so a failed upload commits nothing.
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", apperr.Storage("failed to create temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", apperr.Storage("failed writing audio bytes", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", apperr.Storage("failed closing temp file", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", apperr.Storage("failed committing audio file", err)
	}

	asset := &Asset{
		ID:        uuid.New().String(),
		Object:    object,
		MimeType:  mimeType,
		SizeBytes: int64(len(audio)),
		URL:       s.baseURL + PublicPathPrefix + object,
		CreatedAt: time.Now().UTC(),
	}

	query := `INSERT INTO audio_assets (id, object_name, mime_type, size_bytes, url, created_at)
	          VALUES (:id, :object_name, :mime_type, :size_bytes, :url, :created_at)`
	if _, err := s.db.NamedExec(query, asset); err != nil {
		os.Remove(finalPath)
		return "", apperr.Storage("failed recording audio asset", err)
	}

	s.logger.Debugf("stored %d bytes as %s", asset.SizeBytes, asset.Object)
	return asset.URL, nil
}

// ResolveSignedURL issues a time-boxed signed URL for a stored object.
// ttlSeconds of zero or less falls back to the configured default. The
// caller is trusted to re-request once the URL expires.
func (s *Store) ResolveSignedURL(fileURI string, ttlSeconds int) (string, error) {
	if fileURI == "" {
		return "", apperr.Validation("file_uri is required")
	}
	return s.signer.Sign(fileURI, ttlSeconds)
}

// Dir returns the on-disk audio directory, for the static file route.
func (s *Store) Dir() string {
	return s.dir
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "audio/mpeg":
		return ".mp3"
	case "audio/wav":
		return ".wav"
	default:
		return ""
	}
}
