package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/sugang/internal/app"
	"github.com/garrettladley/sugang/internal/browser"
	"github.com/garrettladley/sugang/internal/clock"
	"github.com/garrettladley/sugang/internal/config"
	"github.com/garrettladley/sugang/internal/env"
	"github.com/garrettladley/sugang/internal/overlay"
	"github.com/garrettladley/sugang/internal/paths"
	"github.com/garrettladley/sugang/internal/probe"
	"github.com/garrettladley/sugang/internal/scheduler"
	"github.com/garrettladley/sugang/internal/service/credentials"
	"github.com/garrettladley/sugang/internal/storage"
	"github.com/garrettladley/sugang/internal/timesource"
	"github.com/garrettladley/sugang/internal/update"
	"github.com/garrettladley/sugang/internal/version"
	"github.com/garrettladley/sugang/internal/xslog"
)

func runApp(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	logger := xslog.FromContext(ctx)

	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close credential store", xslog.Error(err))
		}
	}()

	logger.DebugContext(ctx, "opened credential store", xslog.Store(string(cfg.Store)))

	environment := env.Current()
	if environment.IsProduction() {
		if err := wipeOnFirstRun(ctx, backend); err != nil {
			return err
		}
	}

	matcher, err := loadMatcher(cfg)
	if err != nil {
		return err
	}

	profile, err := paths.ChromeProfile()
	if err != nil {
		return err
	}
	session, err := browser.New(ctx, browser.Options{
		ChromePath: cfg.Browser.ChromePath,
		Headless:   cfg.Browser.Headless,
		Width:      cfg.Browser.Width,
		Height:     cfg.Browser.Height,
		ProfileDir: profile,
	})
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	prober := probe.New(session, probe.WithMatcher(matcher))
	sched := scheduler.New(ctx, backend, prober, scheduler.WithHistory(backend))
	defer sched.Cancel()

	times := timesource.NewCached(
		timesource.NewResolver(cfg.SiteURL, cfg.TimeServiceURL),
		cfg.TimeRefresh,
		clock.Real{},
	)

	var opts []app.Option
	if cfg.Release.AutoUpdate && environment.IsProduction() {
		opts = append(opts, app.WithUpdates(update.NewChecker(cfg.Release.Owner, cfg.Release.Repo), version.Get()))
	}

	a := app.New(cfg.SiteURL, app.Deps{
		Page:        session,
		Credentials: credentials.NewStore(backend, sched),
		Prober:      prober,
		Scheduler:   sched,
		Overlay:     overlay.New(session),
		Time:        times,
	}, opts...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return a.Run(gctx)
	})
	g.Go(func() error {
		logOffset(gctx, times, cfg.TimeRefresh)
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func wipeOnFirstRun(ctx context.Context, backend storage.CredentialStore) error {
	if _, err := paths.EnsureDir(); err != nil {
		return err
	}
	marker, err := paths.FirstRunMarker()
	if err != nil {
		return err
	}
	_, err = credentials.NewStore(backend, nil).WipeOnFirstRun(ctx, marker)
	return err
}

func loadMatcher(cfg config.Config) (probe.Matcher, error) {
	path := cfg.SelectorsFile
	if path == "" {
		p, err := paths.Selectors()
		if err != nil {
			return probe.Matcher{}, err
		}
		path = p
	}
	return probe.LoadMatcher(path)
}

// logOffset keeps the cached server offset warm and logs it each refresh.
func logOffset(ctx context.Context, times *timesource.Cached, every time.Duration) {
	logger := xslog.FromContext(ctx)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		sample := times.ServerTime(ctx)
		logger.DebugContext(ctx, "server time",
			xslog.Source(sample.Source),
			xslog.Offset(sample.Offset()))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
