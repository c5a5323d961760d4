// Package store owns every filesystem path and read/write the tool
// performs: the active settings file, the backup and its metadata
// sidecar, and the saved token file under ~/.claude.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ccswitch/internal/core"
	"ccswitch/internal/fsx"
	"ccswitch/internal/version"
)

// ErrNoHomeDir is returned when the user's home directory cannot be
// resolved and no explicit config directory was given.
var ErrNoHomeDir = errors.New("could not determine home directory")

const (
	settingsName = "settings.json"
	backupName   = "settings.json.backup"
	metaName     = "settings.json.backup.meta"
	tokenName    = ".z_ai_token"
)

// Store persists settings, backup, and token files under one directory.
type Store struct {
	settingsFile string
	backupFile   string
	metaFile     string
	tokenFile    string
}

// New resolves the config directory under the user's home (~/.claude).
func New() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return nil, ErrNoHomeDir
	}
	return NewAt(filepath.Join(home, ".claude")), nil
}

// NewAt pins the store to an explicit directory.
func NewAt(dir string) *Store {
	return &Store{
		settingsFile: filepath.Join(dir, settingsName),
		backupFile:   filepath.Join(dir, backupName),
		metaFile:     filepath.Join(dir, metaName),
		tokenFile:    filepath.Join(dir, tokenName),
	}
}

func (s *Store) SettingsPath() string { return s.settingsFile }
func (s *Store) BackupPath() string   { return s.backupFile }

// Load reads a config file. A missing file is an empty config, not an
// error; malformed JSON is.
func (s *Store) Load(path string) (core.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.Config{}, nil
		}
		return core.Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}
	var cfg core.Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return core.Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadSettings reads the active settings file.
func (s *Store) LoadSettings() (core.Config, error) {
	return s.Load(s.settingsFile)
}

// SaveAtomic serializes a config and writes it via temp-file-then-rename.
func (s *Store) SaveAtomic(path string, cfg core.Config) error {
	b, err := json.MarshalIndent(&cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	if err := fsx.AtomicWrite(path, b, 0o600); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}
	return nil
}

// SaveSettings writes the active settings file.
func (s *Store) SaveSettings(cfg core.Config) error {
	return s.SaveAtomic(s.settingsFile, cfg)
}

// HasBackupFile reports whether any backup file exists on disk,
// regardless of whether it parses.
func (s *Store) HasBackupFile() bool {
	_, err := os.Stat(s.backupFile)
	return err == nil
}

// LoadBackup reads the backup file, accepting both the current shape
// (with _metadata) and the legacy shape (a bare settings file, treated
// as an implicit Anthropic backup with metadata synthesized on read).
// A missing or unparseable backup yields (false, nil): a corrupt backup
// must not block switching.
func (s *Store) LoadBackup() (bool, *core.BackupConfig) {
	b, err := os.ReadFile(s.backupFile)
	if err != nil {
		return false, nil
	}
	var backup core.BackupConfig
	if err := json.Unmarshal(b, &backup); err != nil {
		return false, nil
	}
	if backup.Metadata == nil {
		backup.Metadata = &core.BackupMetadata{
			Provider:  core.ProviderAnthropic.String(),
			CreatedAt: time.Now().Unix(),
			Version:   version.Version,
		}
		return true, &backup
	}
	return backup.Metadata.Provider == core.ProviderAnthropic.String(), &backup
}

// SaveBackup snapshots a config under the given provider tag,
// overwriting any prior backup. The metadata is also written alone to a
// sidecar so it can be inspected without parsing the full backup.
func (s *Store) SaveBackup(cfg core.Config, p core.Provider) error {
	meta := core.BackupMetadata{
		Provider:  p.String(),
		CreatedAt: time.Now().Unix(),
		Version:   version.Version,
	}
	backup := core.BackupConfig{Metadata: &meta, Env: cfg.Env}

	b, err := json.MarshalIndent(&backup, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize backup: %w", err)
	}
	if err := fsx.AtomicWrite(s.backupFile, b, 0o600); err != nil {
		return fmt.Errorf("write backup file %s: %w", s.backupFile, err)
	}

	mb, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize backup metadata: %w", err)
	}
	if err := fsx.AtomicWrite(s.metaFile, mb, 0o600); err != nil {
		return fmt.Errorf("write backup metadata %s: %w", s.metaFile, err)
	}
	return nil
}

// SaveToken persists the raw token with owner-only permissions.
func (s *Store) SaveToken(token string) error {
	if err := fsx.AtomicWrite(s.tokenFile, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file %s: %w", s.tokenFile, err)
	}
	// AtomicWrite applies the mode at creation; chmod again in case an
	// old token file with looser permissions was replaced.
	if err := os.Chmod(s.tokenFile, 0o600); err != nil {
		return fmt.Errorf("restrict token file permissions: %w", err)
	}
	return nil
}

// LoadToken returns the trimmed saved token, or "" when the file is
// absent or blank.
func (s *Store) LoadToken() (string, error) {
	b, err := os.ReadFile(s.tokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token file %s: %w", s.tokenFile, err)
	}
	return strings.TrimSpace(string(b)), nil
}

// RemoveToken deletes the saved token; a missing file is a no-op.
func (s *Store) RemoveToken() error {
	if err := os.Remove(s.tokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file %s: %w", s.tokenFile, err)
	}
	return nil
}
