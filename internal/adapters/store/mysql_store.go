package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/elmehdi/phishmail/internal/core"
)

// MySQLStore is a MySQL implementation of the EmailRepository interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn+"?parseTime=true")
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS analyzed_emails (
			id VARCHAR(36) PRIMARY KEY,
			sender VARCHAR(300),
			subject VARCHAR(500),
			body TEXT NOT NULL,
			verdict VARCHAR(50) NOT NULL,
			report TEXT,
			final_score DOUBLE,
			final_prediction INT,
			urls TEXT,
			created_at TIMESTAMP,
			INDEX idx_created_at (created_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{db: db, logger: logger}, nil
}

// Save stores an analyzed email
func (s *MySQLStore) Save(ctx context.Context, email *core.AnalyzedEmail) error {
	urls, err := json.Marshal(email.URLs)
	if err != nil {
		return fmt.Errorf("failed to encode urls: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		REPLACE INTO analyzed_emails
			(id, sender, subject, body, verdict, report, final_score, final_prediction, urls, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, email.ID, email.Sender, email.Subject, email.Body, string(email.Verdict),
		email.Report, email.FinalScore, email.FinalPrediction, string(urls), email.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analyzed email: %w", err)
	}
	return nil
}

// Get retrieves an analyzed email by id
func (s *MySQLStore) Get(ctx context.Context, id string) (*core.AnalyzedEmail, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, sender, subject, body, verdict, report, final_score, final_prediction, urls, created_at
		FROM analyzed_emails
		WHERE id = ?
	`, id)

	email, err := scanMySQLEmail(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return email, err
}

// List returns analyzed emails, newest first
func (s *MySQLStore) List(ctx context.Context) ([]*core.AnalyzedEmail, error) {
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
		email, err := scanMySQLEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

// Delete removes an analyzed email
func (s *MySQLStore) Delete(ctx context.Context, id string) error {
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
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

func scanMySQLEmail(row rowScanner) (*core.AnalyzedEmail, error) {
	var email core.AnalyzedEmail
	var verdict, urls string

	err := row.Scan(&email.ID, &email.Sender, &email.Subject, &email.Body,
		&verdict, &email.Report, &email.FinalScore, &email.FinalPrediction,
		&urls, &email.CreatedAt)
	if err != nil {
		return nil, err
	}

	email.Verdict = core.Verdict(verdict)
	if urls != "" {
		if err := json.Unmarshal([]byte(urls), &email.URLs); err != nil {
			return nil, fmt.Errorf("failed to decode urls: %w", err)
		}
	}

	return &email, nil
}
