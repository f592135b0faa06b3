// Package update checks the project's GitHub releases for a newer build.
package update

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/garrettladley/sugang/internal/client/github"
	"github.com/garrettladley/sugang/internal/version"
	"github.com/garrettladley/sugang/internal/xerrors"
	"github.com/garrettladley/sugang/internal/xslog"
)

const DefaultReleasePage = "https://github.com/BBIYAKYEE7/sugang/releases/latest"

type Info struct {
	Current   string
	Latest    string
	Published time.Time
	Asset     Choice
}

type Checker struct {
	client *github.Client
	owner  string
	repo   string
	goos   string
	goarch string
}

type Option func(*Checker)

func WithClient(c *github.Client) Option {
	return func(ch *Checker) { ch.client = c }
}

func WithPlatform(goos, goarch string) Option {
	return func(ch *Checker) { ch.goos, ch.goarch = goos, goarch }
}

func NewChecker(owner, repo string, opts ...Option) *Checker {
	c := &Checker{
		client: github.NewClient(),
		owner:  owner,
		repo:   repo,
		goos:   runtime.GOOS,
		goarch: runtime.GOARCH,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check reports whether the latest release is newer than current and, if
// so, which download fits this machine.
func (c *Checker) Check(ctx context.Context, current string) (Info, bool, error) {
	release, err := c.client.GetLatestRelease(ctx, c.owner, c.repo)
	if xerrors.KindOf(err) == xerrors.KindNotFound {
		xslog.FromContext(ctx).DebugContext(ctx, "no published release", xslog.Error(err))
		return Info{Current: current}, false, nil
	}
	if err != nil {
		return Info{}, false, fmt.Errorf("failed to check for updates: %w", err)
	}

	info := Info{Current: current, Latest: release.TagName, Published: release.PublishedAt}
	if !version.IsNewer(current, release.TagName) {
		xslog.FromContext(ctx).DebugContext(ctx, "up to date",
			xslog.ClientVersion(current),
			xslog.LatestVersion(release.TagName))
		return info, false, nil
	}

	info.Asset = Select(c.goos, c.goarch, release)
	xslog.FromContext(ctx).InfoContext(ctx, "update available",
		xslog.ClientVersion(current),
		xslog.LatestVersion(release.TagName),
		xslog.URL(info.Asset.URL))
	return info, true, nil
}
