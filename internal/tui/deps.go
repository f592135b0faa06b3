package tui

import (
	"context"
	"time"

	"github.com/garrettladley/sugang/internal/clock"
	"github.com/garrettladley/sugang/internal/storage"
	"github.com/garrettladley/sugang/internal/timesource"
)

type Deps struct {
	Ctx         context.Context
	Clock       clock.Clock
	Time        timesource.Source
	Credentials storage.CredentialStore
	// Refresh is how often the server offset is sampled again.
	Refresh time.Duration
}
