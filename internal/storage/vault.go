package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/c2FmZQ/storage"
	"github.com/c2FmZQ/storage/crypto"

	"github.com/garrettladley/sugang/internal/credential"
)

var _ Backend = (*VaultBackend)(nil)

const vaultFile = "credentials"

// VaultBackend keeps credentials in a file encrypted with a master key that
// is itself sealed by a passphrase.
type VaultBackend struct {
	noHistory

	dir     string
	storage *storage.Storage
}

func NewVaultBackend(dir, keyFile, passphrase string) (*VaultBackend, error) {
	if passphrase == "" {
		return nil, errors.New("vault passphrase is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}

	masterKey, err := crypto.ReadMasterKey([]byte(passphrase), keyFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read master key: %w", err)
		}
		masterKey, err = crypto.CreateMasterKey()
		if err != nil {
			return nil, fmt.Errorf("failed to create master key: %w", err)
		}
		if err := masterKey.Save([]byte(passphrase), keyFile); err != nil {
			return nil, fmt.Errorf("failed to save master key: %w", err)
		}
	}

	return &VaultBackend{
		dir:     dir,
		storage: storage.New(dir, masterKey),
	}, nil
}

func (v *VaultBackend) Get(_ context.Context) (credential.Credentials, error) {
	var c credential.Credentials
	if err := v.storage.ReadDataFile(vaultFile, &c); err != nil {
		if os.IsNotExist(err) {
			return credential.Credentials{}, ErrNotFound
		}
		return credential.Credentials{}, fmt.Errorf("failed to read vault: %w", err)
	}
	return c, nil
}

func (v *VaultBackend) Set(_ context.Context, c credential.Credentials) error {
	if err := v.storage.SaveDataFile(vaultFile, c); err != nil {
		return fmt.Errorf("failed to write vault: %w", err)
	}
	return nil
}

func (v *VaultBackend) Delete(_ context.Context) error {
	if err := os.Remove(filepath.Join(v.dir, vaultFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove vault file: %w", err)
	}
	return nil
}

func (v *VaultBackend) Close() error { return nil }
