// Package storage provides persistent storage for user preferences and game statistics.
package storage

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "checkersplay"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/checkersplay/
// - Linux: $XDG_DATA_HOME/checkersplay/ or ~/.local/share/checkersplay/
// - Windows: %APPDATA%/checkersplay/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// subDir returns a directory below the data directory, creating it if needed.
func subDir(name string) (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(dataDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dbDir, err := subDir("db")
	if err != nil {
		return "", err
	}
	log.Printf("Database directory: %s", dbDir)
	return dbDir, nil
}

// GetExportDir returns the directory board diagrams and self-play data are
// written to by default.
func GetExportDir() (string, error) {
	return subDir("export")
}
