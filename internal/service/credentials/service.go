package credentials

import (
	"context"

	"github.com/garrettladley/sugang/internal/credential"
)

type Service interface {
	// Load returns storage.ErrNotFound when nothing is saved.
	Load(ctx context.Context) (credential.Credentials, error)

	// Save validates and persists the payload, then reschedules auto login.
	Save(ctx context.Context, p credential.Payload) (credential.Credentials, error)

	// Clear deletes the saved credentials and stops auto login.
	Clear(ctx context.Context) error
}

// Scheduler is told about every change to the saved credentials.
type Scheduler interface {
	Schedule(creds credential.Credentials) bool
	Cancel()
}
