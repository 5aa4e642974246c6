// Package state tracks generated FIT artifacts in a local SQLite manifest so
// unchanged workouts are not rebuilt or re-uploaded.
package state

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	shared "github.com/liftsync/server/pkg"
)

// Manifest is the SQLite-backed artifact manifest.
type Manifest struct {
	db *sql.DB
}

// Open opens (or creates) the manifest database at path, creating parent
// directories as needed.
func Open(path string) (*Manifest, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS artifacts (
		source_id   TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		path        TEXT NOT NULL,
		size        INTEGER NOT NULL,
		sha256      TEXT NOT NULL,
		hr_source   TEXT NOT NULL DEFAULT '',
		built_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating artifacts table: %w", err)
	}

	return &Manifest{db: db}, nil
}

// ShouldRebuild reports whether the artifact for a workout needs to be
// regenerated: true when the workout was never built or its source payload
// fingerprint changed.
func (m *Manifest) ShouldRebuild(ctx context.Context, sourceID, fingerprint string) (bool, error) {
	var count int
	err := m.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM artifacts WHERE source_id = ? AND fingerprint = ?`,
		sourceID, fingerprint,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// MarkBuilt records a successfully generated artifact.
func (m *Manifest) MarkBuilt(ctx context.Context, rec *shared.ArtifactRecord) error {
	_, err := m.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO artifacts (source_id, fingerprint, path, size, sha256, hr_source)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.SourceID, rec.Fingerprint, rec.Path, rec.Size, rec.SHA256, rec.HRSource)
	return err
}

// Close closes the manifest database.
func (m *Manifest) Close() error {
	return m.db.Close()
}

// HashBytes computes the hex SHA-256 of a byte slice.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile computes the hex SHA-256 of a file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
