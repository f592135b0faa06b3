//go:build !release

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/garrettladley/sugang/internal/browser"
	"github.com/garrettladley/sugang/internal/config"
	"github.com/garrettladley/sugang/internal/probe"
	"github.com/garrettladley/sugang/internal/storage"
)

func probeCmd() *cobra.Command {
	var (
		fill         bool
		click        bool
		printMatcher bool
		wait         time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Inspect the login form on the registration site",
		Long:  "Opens the site, waits for it to load and reports which frames expose the login fields.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			matcher, err := loadMatcher(cfg)
			if err != nil {
				return err
			}

			if printMatcher {
				b, err := matcher.Marshal()
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(b)
				return err
			}

			session, err := browser.New(ctx, browser.Options{
				ChromePath: cfg.Browser.ChromePath,
				Headless:   cfg.Browser.Headless,
				Width:      cfg.Browser.Width,
				Height:     cfg.Browser.Height,
			})
			if err != nil {
				return err
			}
			defer func() { _ = session.Close() }()

			if err := session.Navigate(ctx, cfg.SiteURL); err != nil {
				return err
			}
			select {
			case <-session.Loads():
			case <-time.After(wait):
				fmt.Println("no load event, probing anyway")
			case <-ctx.Done():
				return ctx.Err()
			}

			p := probe.New(session, probe.WithMatcher(matcher))
			reports, err := p.Survey(ctx)
			if err != nil {
				return err
			}
			printReports(reports)

			if fill {
				if err := probeFill(cmd, cfg, p); err != nil {
					return err
				}
			}
			if click {
				clicked, err := p.Click(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("clicked: %v\n", clicked)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fill, "fill", false, "prefill the form with the saved credentials")
	cmd.Flags().BoolVar(&click, "click", false, "press the login button after probing")
	cmd.Flags().BoolVar(&printMatcher, "print-matcher", false, "print the effective selectors as YAML and exit")
	cmd.Flags().DurationVar(&wait, "wait", 15*time.Second, "how long to wait for the page to load")
	return cmd
}

func probeFill(cmd *cobra.Command, cfg config.Config, p *probe.Prober) error {
	ctx := cmd.Context()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}
	defer func() { _ = backend.Close() }()

	creds, err := backend.Get(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no saved credentials; run `sugang credentials set` first")
	}
	if err != nil {
		return err
	}

	fmt.Printf("filled: %v\n", p.WaitAndPrefill(ctx, creds))
	return nil
}

func printReports(reports []probe.ScopeReport) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SCOPE", "ACCESS", "USERNAME", "PASSWORD")
	for _, r := range reports {
		t.Row(r.Scope, r.Access().String(), orDash(r.Username), orDash(r.Password))
	}
	fmt.Println(t.String())

	if winner, ok := probe.Resolve(reports); ok {
		fmt.Printf("login fields in %s\n", winner.Scope)
	} else {
		fmt.Println("no scope has both login fields")
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
