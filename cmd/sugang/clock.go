package main

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/sugang/internal/clock"
	"github.com/garrettladley/sugang/internal/config"
	"github.com/garrettladley/sugang/internal/storage"
	"github.com/garrettladley/sugang/internal/timesource"
	"github.com/garrettladley/sugang/internal/tui"
	"github.com/garrettladley/sugang/internal/xslog"
)

func clockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clock",
		Short: "Show server time and the countdown to the next boundary",
		Long:  "Opens a full-screen terminal clock synced to the registration site's server time.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := xslog.Quiet(cmd.Context())

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			backend, err := storage.Open(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to open credential store: %w", err)
			}
			defer func() { _ = backend.Close() }()

			deps := tui.Deps{
				Ctx:   ctx,
				Clock: clock.Real{},
				Time: timesource.NewCached(
					timesource.NewResolver(cfg.SiteURL, cfg.TimeServiceURL),
					cfg.TimeRefresh,
					clock.Real{},
				),
				Credentials: backend,
				Refresh:     cfg.TimeRefresh,
			}
			model := tui.New(deps)

			p := tea.NewProgram(&model, tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run clock: %w", err)
			}
			return nil
		},
	}
}
