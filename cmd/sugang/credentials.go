package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/garrettladley/sugang/internal/config"
	"github.com/garrettladley/sugang/internal/credential"
	"github.com/garrettladley/sugang/internal/service/credentials"
	"github.com/garrettladley/sugang/internal/storage"
)

func credentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "credentials",
		Aliases: []string{"creds"},
		Short:   "Manage the saved login",
	}
	cmd.AddCommand(credentialsSetCmd())
	cmd.AddCommand(credentialsShowCmd())
	cmd.AddCommand(credentialsClearCmd())
	return cmd
}

func credentialsSetCmd() *cobra.Command {
	var (
		username    string
		noAutoLogin bool
		noSaveInfo  bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the login used for the registration site",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if username == "" {
				u, err := prompt("학번: ")
				if err != nil {
					return err
				}
				username = u
			}
			password, err := promptPassword("비밀번호: ")
			if err != nil {
				return err
			}

			autoLogin, saveInfo := !noAutoLogin, !noSaveInfo
			return withService(ctx, func(svc *credentials.Store) error {
				creds, err := svc.Save(ctx, credential.Payload{
					Username:  username,
					Password:  password,
					AutoLogin: &autoLogin,
					SaveInfo:  &saveInfo,
				})
				if err != nil {
					return fmt.Errorf("failed to save credentials: %w", err)
				}
				fmt.Printf("Saved credentials for %s (auto login: %s)\n", creds.Username, onOff(creds.AutoLogin))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "student ID (prompted when empty)")
	cmd.Flags().BoolVar(&noAutoLogin, "no-auto-login", false, "save without scheduling automatic login")
	cmd.Flags().BoolVar(&noSaveInfo, "no-save-info", false, "clear the save-info flag")
	return cmd
}

func credentialsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved login with the password masked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withService(ctx, func(svc *credentials.Store) error {
				creds, err := svc.Load(ctx)
				if errors.Is(err, storage.ErrNotFound) {
					fmt.Println("No saved credentials")
					return nil
				}
				if err != nil {
					return fmt.Errorf("failed to load credentials: %w", err)
				}
				fmt.Printf("Username:   %s\n", creds.Username)
				fmt.Printf("Password:   %s\n", creds.Masked())
				fmt.Printf("Auto login: %s\n", onOff(creds.AutoLogin))
				fmt.Printf("Save info:  %s\n", onOff(creds.SaveInfo))
				return nil
			})
		},
	}
}

func credentialsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved login",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withService(ctx, func(svc *credentials.Store) error {
				if err := svc.Clear(ctx); err != nil {
					return err
				}
				fmt.Println("Deleted saved credentials")
				return nil
			})
		},
	}
}

// withService opens the configured store for the duration of f.
func withService(ctx context.Context, f func(svc *credentials.Store) error) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}
	defer func() { _ = backend.Close() }()

	return f(credentials.NewStore(backend, nil))
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(label)
	}
	fmt.Print(label)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
