package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dir := t.TempDir()
	signer := NewSigner("test-secret", 0)
	return NewStore(db, dir, "http://localhost:8080", signer)
}

func TestStoreWritesFileAndReturnsDurableURL(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Store([]byte("mp3-data"), "audio/mpeg")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:8080"+PublicPathPrefix) {
		t.Errorf("url = %q, want %s prefix", url, PublicPathPrefix)
	}
	if !strings.HasSuffix(url, ".mp3") {
		t.Errorf("url = %q, want .mp3 suffix", url)
	}

	object := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(store.Dir(), object))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "mp3-data" {
		t.Errorf("stored bytes = %q", data)
	}

	var count int
	if err := store.db.Get(&count, `SELECT COUNT(*) FROM audio_assets WHERE object_name = ?`, object); err != nil {
		t.Fatalf("query assets: %v", err)
	}
	if count != 1 {
		t.Errorf("asset rows = %d, want 1", count)
	}
}

func TestStoreRejectsEmptyAudio(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Store(nil, "audio/mpeg")
	if !apperr.IsKind(err, apperr.KindStorage) {
		t.Fatalf("Store(nil) error = %v, want storage kind", err)
	}

	// Nothing may be committed on failure.
	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("found %d leftover files after failed store", len(entries))
	}
}

func TestResolveSignedURLRequiresFileURI(t *testing.T) {
	store := newTestStore(t)
	_, err := store.ResolveSignedURL("", 60)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("ResolveSignedURL(\"\") error = %v, want validation", err)
	}
}
