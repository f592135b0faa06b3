package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/garrettladley/sugang/internal/credential"
	"github.com/garrettladley/sugang/internal/storage"
	"github.com/garrettladley/sugang/internal/xslog"
)

type Store struct {
	store storage.CredentialStore
	sched Scheduler
}

var _ Service = (*Store)(nil)

// NewStore returns a Service over store. sched may be nil when nothing is
// scheduled, as in the CLI.
func NewStore(store storage.CredentialStore, sched Scheduler) *Store {
	return &Store{store: store, sched: sched}
}

func (s *Store) Load(ctx context.Context) (credential.Credentials, error) {
	return s.store.Get(ctx)
}

func (s *Store) Save(ctx context.Context, p credential.Payload) (credential.Credentials, error) {
	creds, err := p.Credentials()
	if err != nil {
		return credential.Credentials{}, err
	}
	if err := s.store.Set(ctx, creds); err != nil {
		return credential.Credentials{}, fmt.Errorf("failed to save credentials: %w", err)
	}

	xslog.FromContext(ctx).InfoContext(ctx, "saved credentials",
		xslog.Username(creds.Username),
		xslog.AutoLogin(creds.AutoLogin))

	if s.sched != nil {
		s.sched.Schedule(creds)
	}
	return creds, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if s.sched != nil {
		s.sched.Cancel()
	}
	if err := s.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	xslog.FromContext(ctx).InfoContext(ctx, "cleared credentials")
	return nil
}

// WipeOnFirstRun deletes any saved credentials the first time it sees no
// marker file, then writes the marker. It reports whether it wiped.
func (s *Store) WipeOnFirstRun(ctx context.Context, marker string) (bool, error) {
	_, err := os.Stat(marker)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to check first run marker: %w", err)
	}

	if err := s.store.Delete(ctx); err != nil {
		return false, fmt.Errorf("failed to delete credentials on first run: %w", err)
	}
	if err := os.WriteFile(marker, nil, 0o600); err != nil {
		return false, fmt.Errorf("failed to write first run marker: %w", err)
	}
	xslog.FromContext(ctx).InfoContext(ctx, "first run, cleared saved credentials")
	return true, nil
}
