package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dotConfig     = ".config"
	appName       = "sugang"
	dbName        = "sugang.db"
	vaultDirName  = "vault"
	keyName       = "master.key"
	selectorsName = "selectors.yaml"
	firstRunName  = ".first-run"
	profileName   = "chrome-profile"
)

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dotConfig, appName), nil
}

func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", appName, err)
	}
	return dir, nil
}

func DB() (string, error) {
	return join(dbName)
}

func Vault() (string, error) {
	return join(vaultDirName)
}

func MasterKey() (string, error) {
	return join(keyName)
}

// Selectors is the default location of the selector override file.
func Selectors() (string, error) {
	return join(selectorsName)
}

// FirstRunMarker exists once a release build has completed its first launch.
func FirstRunMarker() (string, error) {
	return join(firstRunName)
}

// ChromeProfile keeps the browser's cookies between launches.
func ChromeProfile() (string, error) {
	return join(profileName)
}

func join(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
