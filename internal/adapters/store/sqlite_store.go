package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/elmehdi/phishmail/internal/core"
)

// SQLiteStore is a SQLite implementation of the EmailRepository interface
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS analyzed_emails (
			id TEXT PRIMARY KEY,
			sender TEXT,
			subject TEXT,
			body TEXT NOT NULL,
			verdict TEXT NOT NULL,
			report TEXT,
			final_score REAL,
			final_prediction INTEGER,
			urls TEXT,
			created_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Index for newest-first listing
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_created_at ON analyzed_emails(created_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Save stores an analyzed email
func (s *SQLiteStore) Save(ctx context.Context, email *core.AnalyzedEmail) error {
	urls, err := json.Marshal(email.URLs)
	if err != nil {
		return fmt.Errorf("failed to encode urls: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO analyzed_emails
			(id, sender, subject, body, verdict, report, final_score, final_prediction, urls, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, email.ID, email.Sender, email.Subject, email.Body, string(email.Verdict),
		email.Report, email.FinalScore, email.FinalPrediction, string(urls),
		email.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert analyzed email: %w", err)
	}
	return nil
}

// Get retrieves an analyzed email by id
func (s *SQLiteStore) Get(ctx context.Context, id string) (*core.AnalyzedEmail, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, sender, subject, body, verdict, report, final_score, final_prediction, urls, created_at
		FROM analyzed_emails
		WHERE id = ?
	`, id)

	email, err := scanEmail(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return email, err
}

// List returns analyzed emails, newest first
func (s *SQLiteStore) List(ctx context.Context) ([]*core.AnalyzedEmail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender, subject, body, verdict, report, final_score, final_prediction, urls, created_at
		FROM analyzed_emails
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyzed emails: %w", err)
	}
	defer rows.Close()

	var emails []*core.AnalyzedEmail
	for rows.Next() {
		email, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

// Delete removes an analyzed email
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM analyzed_emails WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analyzed email: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmail(row rowScanner) (*core.AnalyzedEmail, error) {
	var email core.AnalyzedEmail
	var verdict, urls, createdAt string

	err := row.Scan(&email.ID, &email.Sender, &email.Subject, &email.Body,
		&verdict, &email.Report, &email.FinalScore, &email.FinalPrediction,
		&urls, &createdAt)
	if err != nil {
		return nil, err
	}

	email.Verdict = core.Verdict(verdict)
	if urls != "" {
		if err := json.Unmarshal([]byte(urls), &email.URLs); err != nil {
			return nil, fmt.Errorf("failed to decode urls: %w", err)
		}
	}
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		email.CreatedAt = parsed
	}

	return &email, nil
}
