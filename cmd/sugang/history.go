package main

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/garrettladley/sugang/internal/config"
	"github.com/garrettladley/sugang/internal/storage"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent timed login attempts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			backend, err := storage.Open(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to open credential store: %w", err)
			}
			defer func() { _ = backend.Close() }()

			attempts, err := backend.ListAttempts(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list attempts: %w", err)
			}
			if len(attempts) == 0 {
				fmt.Printf("No attempts recorded (store: %s)\n", cfg.Store)
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("TARGET", "FIRED AT", "RESULT", "CHAIN")
			for _, a := range attempts {
				firedAt := "-"
				if !a.FiredAt.IsZero() {
					firedAt = a.FiredAt.Format("15:04:05.000")
				}
				t.Row(
					a.Target.Format("2006-01-02 15:04"),
					firedAt,
					a.Reason,
					a.ChainID.String()[:8],
				)
			}
			fmt.Println(t.String())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of attempts to show")
	return cmd
}
