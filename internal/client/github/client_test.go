package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/sugang/internal/xerrors"
)

func TestGetLatestRelease(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/BBIYAKYEE7/sugang/releases/latest" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("Accept = %q", got)
		}
		if got := r.Header.Get("X-GitHub-Api-Version"); got != "2022-11-28" {
			t.Errorf("X-GitHub-Api-Version = %q", got)
		}
		_, _ = w.Write([]byte(`{
			"tag_name": "v1.4.0",
			"published_at": "2025-02-03T04:05:06Z",
			"html_url": "https://github.com/BBIYAKYEE7/sugang/releases/tag/v1.4.0",
			"assets": [{"name": "Setup-windows-x64.exe", "browser_download_url": "https://example.com/a.exe", "size": 42}]
		}`))
	}))
	t.Cleanup(srv.Close)

	got, err := NewClient(WithBaseURL(srv.URL)).GetLatestRelease(context.Background(), "BBIYAKYEE7", "sugang")
	if err != nil {
		t.Fatalf("GetLatestRelease() error = %v", err)
	}
	want := &Release{
		TagName:     "v1.4.0",
		HTMLURL:     "https://github.com/BBIYAKYEE7/sugang/releases/tag/v1.4.0",
		PublishedAt: time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC),
		Assets:      []Asset{{Name: "Setup-windows-x64.exe", BrowserDownloadURL: "https://example.com/a.exe", Size: 42}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetLatestRelease() mismatch (-want +got):\n%s", diff)
	}

	_, err = NewClient(WithBaseURL(srv.URL)).GetLatestRelease(context.Background(), "nobody", "nothing")
	if got := xerrors.KindOf(err); got != xerrors.KindNotFound {
		t.Errorf("KindOf(404) = %q, want %q", got, xerrors.KindNotFound)
	}
}

func TestGetLatestReleaseServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(WithBaseURL(srv.URL)).GetLatestRelease(context.Background(), "BBIYAKYEE7", "sugang")
	if err == nil {
		t.Fatal("GetLatestRelease() error = nil for 502")
	}
	if got := xerrors.KindOf(err); got == xerrors.KindNotFound {
		t.Errorf("KindOf(502) = %q", got)
	}
}
