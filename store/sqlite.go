package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	commsig "github.com/commsiglabs/commsig-go"
)

// openDB is swappable in tests.
var openDB = sql.Open

// SQLiteConfig holds sqlite store configuration.
type SQLiteConfig struct {
	// Path is the database file. Parent directories are created on open.
	Path string
}

// DefaultSQLiteConfig returns the default configuration.
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{Path: "commsig.db"}
}

// SQLiteStorage implements commsig.Storage on a local SQLite file.
// Traits and answers are stored as JSON text, timestamps as fixed-width
// RFC 3339 text, and the unsigned content hash as decimal text.
type SQLiteStorage struct {
	db *sql.DB
}

var _ commsig.Storage = (*SQLiteStorage)(nil)

// NewSQLiteStorage opens (creating if needed) the database, applies the
// WAL pragmas and runs migrations.
func NewSQLiteStorage(cfg SQLiteConfig) (*SQLiteStorage, error) {
	if cfg.Path == "" {
		cfg = DefaultSQLiteConfig()
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStorage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

func (s *SQLiteStorage) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS profiles (
			user_id    TEXT PRIMARY KEY,
			signature  TEXT NOT NULL,
			traits     TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS assessments (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			answers      TEXT NOT NULL,
			traits       TEXT NOT NULL,
			signature    TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			created_at   TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_assessments_user_hash
			ON assessments(user_id, content_hash);

		CREATE TABLE IF NOT EXISTS purchases (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			plan         TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			status       TEXT NOT NULL,
			receipt      TEXT NOT NULL DEFAULT '',
			created_at   TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_purchases_user
			ON purchases(user_id, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStorage) Profile(ctx context.Context, userID string) (*commsig.ProfileRecord, error) {
	var (
		rec       commsig.ProfileRecord
		traits    string
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, signature, traits, updated_at FROM profiles WHERE user_id = ?`,
		userID,
	).Scan(&rec.UserID, &rec.Signature, &traits, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, commsig.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get profile: %w", err)
	}
	if err := json.Unmarshal([]byte(traits), &rec.Traits); err != nil {
		return nil, fmt.Errorf("store: decode traits: %w", err)
	}
	rec.UpdatedAt = parseTime(updatedAt)
	return &rec, nil
}

func (s *SQLiteStorage) PutProfile(ctx context.Context, rec *commsig.ProfileRecord) error {
	traits, err := json.Marshal(rec.Traits)
	if err != nil {
		return fmt.Errorf("store: encode traits: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, signature, traits, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			signature = excluded.signature,
			traits = excluded.traits,
			updated_at = excluded.updated_at`,
		rec.UserID, rec.Signature, string(traits), formatTime(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("store: put profile: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Assessment(ctx context.Context, id string) (*commsig.AssessmentRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, answers, traits, signature, content_hash, created_at
		FROM assessments WHERE id = ?`, id)
	return scanAssessment(row)
}

func (s *SQLiteStorage) AssessmentByHash(ctx context.Context, userID string, hash uint64) (*commsig.AssessmentRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, answers, traits, signature, content_hash, created_at
		FROM assessments WHERE user_id = ? AND content_hash = ?
		ORDER BY created_at DESC LIMIT 1`,
		userID, strconv.FormatUint(hash, 10))
	return scanAssessment(row)
}

func scanAssessment(row *sql.Row) (*commsig.AssessmentRecord, error) {
	var (
		rec       commsig.AssessmentRecord
		answers   string
		traits    string
		hash      string
		createdAt string
	)
	err := row.Scan(&rec.ID, &rec.UserID, &answers, &traits, &rec.Signature, &hash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, commsig.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get assessment: %w", err)
	}
	if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
		return nil, fmt.Errorf("store: decode answers: %w", err)
	}
	if err := json.Unmarshal([]byte(traits), &rec.Traits); err != nil {
		return nil, fmt.Errorf("store: decode traits: %w", err)
	}
	rec.ContentHash, _ = strconv.ParseUint(hash, 10, 64)
	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

func (s *SQLiteStorage) PutAssessment(ctx context.Context, rec *commsig.AssessmentRecord) error {
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("store: encode answers: %w", err)
	}
	traits, err := json.Marshal(rec.Traits)
	if err != nil {
		return fmt.Errorf("store: encode traits: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessments (id, user_id, answers, traits, signature, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, string(answers), string(traits), rec.Signature,
		strconv.FormatUint(rec.ContentHash, 10), formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("store: put assessment: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Purchases(ctx context.Context, userID string) ([]*commsig.PurchaseRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, plan, amount_cents, status, receipt, created_at
		FROM purchases WHERE user_id = ?
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list purchases: %w", err)
	}
	defer rows.Close()

	var out []*commsig.PurchaseRecord
	for rows.Next() {
		var (
			rec       commsig.PurchaseRecord
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Plan, &rec.AmountCents,
			&rec.Status, &rec.Receipt, &createdAt); err != nil {
			return nil, fmt.Errorf("store: scan purchase: %w", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list purchases: %w", err)
	}
	if out == nil {
		out = []*commsig.PurchaseRecord{}
	}
	return out, nil
}

func (s *SQLiteStorage) PutPurchase(ctx context.Context, rec *commsig.PurchaseRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO purchases (id, user_id, plan, amount_cents, status, receipt, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Plan, rec.AmountCents, rec.Status, rec.Receipt,
		formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("store: put purchase: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// timeLayout keeps a fixed-width fraction: RFC3339Nano trims trailing
// zeros, which breaks lexicographic ORDER BY on the TEXT columns ("…00Z"
// sorts after "…00.5Z").
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
