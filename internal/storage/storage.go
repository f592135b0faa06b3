package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/sugang/internal/credential"
)

var ErrNotFound = errors.New("credentials not found")

// CredentialStore persists the single credentials slot.
type CredentialStore interface {
	// Get returns ErrNotFound when nothing is saved.
	Get(ctx context.Context) (credential.Credentials, error)
	Set(ctx context.Context, c credential.Credentials) error
	// Delete is a no-op when nothing is saved.
	Delete(ctx context.Context) error
}

// Attempt is one run of the timed clicker.
type Attempt struct {
	ChainID uuid.UUID `json:"chain_id"`
	Target  time.Time `json:"target"`
	FiredAt time.Time `json:"fired_at"`
	Clicked bool      `json:"clicked"`
	Reason  string    `json:"reason"`
}

type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, a Attempt) error
	// ListAttempts returns the most recent attempts first.
	ListAttempts(ctx context.Context, limit int) ([]Attempt, error)
}

type Backend interface {
	CredentialStore
	AttemptRecorder

	Close() error
}

// noHistory is embedded by backends that keep no attempt history.
type noHistory struct{}

func (noHistory) RecordAttempt(context.Context, Attempt) error { return nil }

func (noHistory) ListAttempts(context.Context, int) ([]Attempt, error) { return nil, nil }
