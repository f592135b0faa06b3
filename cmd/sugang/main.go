package main

import (
	"context"
	"log/slog"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/garrettladley/sugang/internal/version"
	"github.com/garrettladley/sugang/internal/xslog"
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stderr)
	slog.SetDefault(logger)
	ctx := xslog.WithLogger(context.Background(), logger)

	rootCmd := &cobra.Command{
		Use:     "sugang",
		Short:   "Timed login for course registration",
		Long:    "Opens the registration site in Chrome, fills the login form and submits it on the hour and half hour.",
		Version: version.Get(),
		RunE:    runApp,
	}

	rootCmd.AddCommand(credentialsCmd())
	rootCmd.AddCommand(clockCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(upgradeCmd())
	addDevCommands(rootCmd)

	if err := fang.Execute(ctx, rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
