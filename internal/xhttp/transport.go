package xhttp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/garrettladley/sugang/internal/version"
	"github.com/garrettladley/sugang/internal/xslog"
)

type sugangTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*sugangTransport)(nil)

func (t *sugangTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(UserAgent) == "" {
		req.Header.Set(UserAgent, "sugang/"+version.Get())
	}
	req.Header.Set(version.Header, version.Get())

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	logger := xslog.FromContext(req.Context())
	if err != nil {
		logger.DebugContext(req.Context(), "http round trip failed",
			xslog.URL(req.URL.String()),
			xslog.Duration(time.Since(start)),
			xslog.Error(err))
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	logger.DebugContext(req.Context(), "http round trip",
		xslog.URL(req.URL.String()),
		xslog.HTTPStatus(resp.StatusCode),
		xslog.Duration(time.Since(start)))
	return resp, nil
}

// NewTransport returns an http.RoundTripper with standard sugang headers.
func NewTransport() http.RoundTripper {
	return &sugangTransport{base: http.DefaultTransport}
}
