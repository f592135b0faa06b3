// Package timesource resolves the registration server's clock.
package timesource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/garrettladley/sugang/internal/clock"
	"github.com/garrettladley/sugang/internal/xerrors"
	"github.com/garrettladley/sugang/internal/xhttp"
	"github.com/garrettladley/sugang/internal/xslog"
)

const DefaultTimeout = 2 * time.Second

const (
	SourceSite    = "site"
	SourceService = "service"
	SourceLocal   = "local"
)

// Sample is one server-time reading. FetchedAt is the local time the
// lookup began, so Offset is the server's lead over the local clock.
type Sample struct {
	Server    time.Time
	FetchedAt time.Time
	Source    string
}

func (s Sample) Offset() time.Duration { return s.Server.Sub(s.FetchedAt) }

type Source interface {
	ServerTime(ctx context.Context) Sample
}

type fetcher struct {
	name  string
	fetch func(ctx context.Context) (time.Time, error)
}

// Resolver tries the site's Date header, then the time service, then the
// local clock. It never fails.
type Resolver struct {
	siteURL    string
	serviceURL string
	httpClient *http.Client
	timeout    time.Duration
	clock      clock.Clock
}

var _ Source = (*Resolver)(nil)

type Option func(*Resolver)

func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) { r.httpClient = c }
}

func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

func WithClock(c clock.Clock) Option {
	return func(r *Resolver) { r.clock = c }
}

func NewResolver(siteURL, serviceURL string, opts ...Option) *Resolver {
	r := &Resolver{
		siteURL:    siteURL,
		serviceURL: serviceURL,
		httpClient: xhttp.NewHTTPClient(xhttp.WithoutRedirects()),
		timeout:    DefaultTimeout,
		clock:      clock.Real{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) ServerTime(ctx context.Context) Sample {
	fetchedAt := r.clock.Now()
	logger := xslog.FromContext(ctx)

	for _, f := range []fetcher{
		{name: SourceSite, fetch: r.siteDate},
		{name: SourceService, fetch: r.serviceTime},
	} {
		server, err := r.attempt(ctx, f)
		if err != nil {
			logger.DebugContext(ctx, "server time source failed",
				xslog.Source(f.name),
				xslog.Error(err))
			continue
		}
		sample := Sample{Server: server, FetchedAt: fetchedAt, Source: f.name}
		logger.DebugContext(ctx, "resolved server time",
			xslog.SampleGroup(sample.Source, sample.Server, sample.FetchedAt))
		return sample
	}

	return Sample{Server: r.clock.Now(), FetchedAt: fetchedAt, Source: SourceLocal}
}

func (r *Resolver) attempt(ctx context.Context, f fetcher) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	t, err := f.fetch(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return time.Time{}, xerrors.NetworkTimeout(
				xerrors.WithMessage(f.name+" lookup timed out"),
				xerrors.WithCause(err))
		}
		return time.Time{}, err
	}
	return t, nil
}

func (r *Resolver) siteDate(ctx context.Context) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, r.siteURL, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return xhttp.ParseDate(resp.Header)
}

var serviceTimestamp = regexp.MustCompile(`(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`)

const serviceLayout = "2006-01-02 15:04:05"

// maxServiceBody caps how much of the service page is scanned.
const maxServiceBody = 1 << 20

func (r *Resolver) serviceTime(ctx context.Context) (time.Time, error) {
	u, err := url.Parse(r.serviceURL)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse service url: %w", err)
	}
	q := u.Query()
	q.Set("host", hostOf(r.siteURL))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(xhttp.UserAgent, xhttp.BrowserUserAgent)
	req.Header.Set(xhttp.Accept, xhttp.AcceptHTML)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxServiceBody))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read response: %w", err)
	}
	return ParseServiceTimestamp(body)
}

// ParseServiceTimestamp extracts the first "YYYY-MM-DD HH:MM:SS" in body
// and reads it as UTC.
func ParseServiceTimestamp(body []byte) (time.Time, error) {
	m := serviceTimestamp.FindSubmatch(body)
	if m == nil {
		return time.Time{}, errors.New("no timestamp in service response")
	}
	t, err := time.ParseInLocation(serviceLayout, string(m[1]), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse service timestamp %q: %w", m[1], err)
	}
	return t, nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Host
}
