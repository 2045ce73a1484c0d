package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sqlx.DB
}

// NewDB creates a new database connection
func NewDB(databaseURL string) (*DB, error) {
	if databaseURL == "" {
		databaseURL = "inkvoice.db" // Default SQLite file
	}

	db, err := sqlx.Connect("sqlite3", databaseURL+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	dbWrapper := &DB{DB: db}

	if err := dbWrapper.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Println("Database connection established and tables initialized")
	return dbWrapper, nil
}

// createTables creates the necessary database tables
func (db *DB) createTables() error {
	usersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		display_name TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_login_at DATETIME,
		is_active BOOLEAN DEFAULT TRUE
	);`

	voiceProfilesTable := `
	CREATE TABLE IF NOT EXISTS voice_profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		gender TEXT NOT NULL,
		age_range TEXT NOT NULL DEFAULT '',
		personality TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT 'ai_generated',
		provider TEXT NOT NULL DEFAULT 'openai',
		provider_voice TEXT NOT NULL,
		sample_audio_url TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	framesTable := `
	CREATE TABLE IF NOT EXISTS frames (
		id TEXT PRIMARY KEY,
		dialogue TEXT NOT NULL DEFAULT '',
		sound_effect TEXT NOT NULL DEFAULT '',
		audio_url TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	audioAssetsTable := `
	CREATE TABLE IF NOT EXISTS audio_assets (
		id TEXT PRIMARY KEY,
		object_name TEXT UNIQUE NOT NULL,
		mime_type TEXT NOT NULL,
		size_bytes INTEGER NOT NULL,
		url TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);`,
		`CREATE INDEX IF NOT EXISTS idx_voice_profiles_gender ON voice_profiles(gender);`,
		`CREATE INDEX IF NOT EXISTS idx_audio_assets_object ON audio_assets(object_name);`,
	}

	for _, query := range []string{usersTable, voiceProfilesTable, framesTable, audioAssetsTable} {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, index := range indexes {
		if _, err := db.Exec(index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
