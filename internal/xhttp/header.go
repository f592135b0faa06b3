package xhttp

import (
	"fmt"
	"net/http"
	"time"
)

const (
	UserAgent = "User-Agent"
	Accept    = "Accept"
	Date      = "Date"
)

// BrowserUserAgent is sent to hosts that reject non-browser clients.
const BrowserUserAgent = "Mozilla/5.0"

const AcceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"

const AcceptGitHubJSON = "application/vnd.github+json"

// ParseDate reads the response Date header.
func ParseDate(h http.Header) (time.Time, error) {
	v := h.Get(Date)
	if v == "" {
		return time.Time{}, fmt.Errorf("missing %s header", Date)
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s header %q: %w", Date, v, err)
	}
	return t, nil
}
