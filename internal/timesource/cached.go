package timesource

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/garrettladley/sugang/internal/clock"
)

// Cached keeps the last sample's offset and refreshes it from the wrapped
// Source at most once per interval.
type Cached struct {
	source  Source
	clock   clock.Clock
	limiter *rate.Limiter

	mu     sync.RWMutex
	sample Sample
	ok     bool
}

var _ Source = (*Cached)(nil)

func NewCached(source Source, interval time.Duration, c clock.Clock) *Cached {
	return &Cached{
		source:  source,
		clock:   c,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// ServerTime returns a sample projected onto the current local time.
func (c *Cached) ServerTime(ctx context.Context) Sample {
	now := c.clock.Now()
	if c.limiter.AllowN(now, 1) {
		s := c.source.ServerTime(ctx)
		c.mu.Lock()
		c.sample, c.ok = s, true
		c.mu.Unlock()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.ok {
		return Sample{Server: now, FetchedAt: now, Source: SourceLocal}
	}
	return Sample{Server: now.Add(c.sample.Offset()), FetchedAt: now, Source: c.sample.Source}
}

// Offset is the most recent server lead over the local clock.
func (c *Cached) Offset() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sample.Offset()
}
