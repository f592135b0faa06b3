package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garrettladley/sugang/internal/config"
	"github.com/garrettladley/sugang/internal/update"
	"github.com/garrettladley/sugang/internal/version"
)

func upgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Check for a newer release and print its download",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			currentVersion := version.Get()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			checker := update.NewChecker(cfg.Release.Owner, cfg.Release.Repo)
			info, newer, err := checker.Check(ctx, currentVersion)
			if err != nil {
				return err
			}

			if !newer {
				fmt.Printf("sugang is up to date (%s)\n", currentVersion)
				return nil
			}

			fmt.Printf("sugang %s → %s is available", currentVersion, info.Latest)
			if !info.Published.IsZero() {
				fmt.Printf(" (released %s)", info.Published.Local().Format("2006-01-02"))
			}
			fmt.Println()
			if info.Asset.IsReleasePage() {
				fmt.Printf("No installer matched this machine; see %s\n", info.Asset.URL)
				return nil
			}
			fmt.Printf("%s: %s\n", info.Asset.Label, info.Asset.URL)
			return nil
		},
	}
}
