package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/garrettladley/sugang/internal/credential"
	"github.com/garrettladley/sugang/internal/migrations"
)

var _ Backend = (*SQLiteBackend)(nil)

type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens the database at path and applies pending migrations.
func NewSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (s *SQLiteBackend) Get(ctx context.Context) (credential.Credentials, error) {
	var c credential.Credentials
	err := s.db.QueryRowContext(ctx, `
		SELECT username, password, auto_login, save_info
		FROM credentials
		WHERE id = 1
	`).Scan(&c.Username, &c.Password, &c.AutoLogin, &c.SaveInfo)
	if errors.Is(err, sql.ErrNoRows) {
		return credential.Credentials{}, ErrNotFound
	}
	if err != nil {
		return credential.Credentials{}, fmt.Errorf("failed to get credentials: %w", err)
	}
	return c, nil
}

func (s *SQLiteBackend) Set(ctx context.Context, c credential.Credentials) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (id, username, password, auto_login, save_info, updated_at)
		VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			username = excluded.username,
			password = excluded.password,
			auto_login = excluded.auto_login,
			save_info = excluded.save_info,
			updated_at = excluded.updated_at
	`, c.Username, c.Password, c.AutoLogin, c.SaveInfo)
	if err != nil {
		return fmt.Errorf("failed to set credentials: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) RecordAttempt(ctx context.Context, a Attempt) error {
	var firedAt sql.NullTime
	if !a.FiredAt.IsZero() {
		firedAt = sql.NullTime{Time: a.FiredAt, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts (chain_id, target, fired_at, clicked, reason)
		VALUES (?, ?, ?, ?, ?)
	`, a.ChainID.String(), a.Target, firedAt, a.Clicked, a.Reason)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) ListAttempts(ctx context.Context, limit int) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT chain_id, target, fired_at, clicked, reason
		FROM attempts
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Attempt
	for rows.Next() {
		var (
			a       Attempt
			chainID string
			firedAt sql.NullTime
		)
		if err := rows.Scan(&chainID, &a.Target, &firedAt, &a.Clicked, &a.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		if a.ChainID, err = uuid.Parse(chainID); err != nil {
			return nil, fmt.Errorf("failed to parse chain id %q: %w", chainID, err)
		}
		if firedAt.Valid {
			a.FiredAt = firedAt.Time
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attempts: %w", err)
	}
	return out, nil
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
