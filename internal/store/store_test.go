package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"ccswitch/internal/core"
)

// TestLoadMissingFile verifies a missing settings file reads as an empty
// config rather than an error.
func TestLoadMissingFile(t *testing.T) {
	s := NewAt(t.TempDir())

	cfg, err := s.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if len(cfg.Env) != 0 {
		t.Errorf("env = %v, want empty", cfg.Env)
	}
}

// TestLoadMalformed verifies malformed JSON surfaces as an error.
func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	s := NewAt(dir)
	if err := os.WriteFile(s.SettingsPath(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := s.LoadSettings(); err == nil {
		t.Error("expected parse error, got nil")
	}
}

// TestSaveLoadRoundTrip verifies the JSON round trip preserves the env map.
func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewAt(t.TempDir())
	cfg := core.Config{Env: map[string]string{
		core.KeyBaseURL: "https://api.z.ai/api/anthropic",
		"OTHER":         "value",
	}}

	if err := s.SaveSettings(cfg); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got, err := s.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if len(got.Env) != len(cfg.Env) {
		t.Fatalf("env has %d keys, want %d", len(got.Env), len(cfg.Env))
	}
	for k, v := range cfg.Env {
		if got.Env[k] != v {
			t.Errorf("env[%s] = %q, want %q", k, got.Env[k], v)
		}
	}
}

// TestSaveSettingsCreatesDir verifies save works when ~/.claude does not
// exist yet.
func TestSaveSettingsCreatesDir(t *testing.T) {
	s := NewAt(filepath.Join(t.TempDir(), "nested", ".claude"))

	if err := s.SaveSettings(core.Config{}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if _, err := os.Stat(s.SettingsPath()); err != nil {
		t.Errorf("settings file not written: %v", err)
	}
}

// TestLoadBackupAbsent verifies a missing backup yields (false, nil).
func TestLoadBackupAbsent(t *testing.T) {
	s := NewAt(t.TempDir())

	ok, backup := s.LoadBackup()
	if ok || backup != nil {
		t.Errorf("LoadBackup = (%v, %v), want (false, nil)", ok, backup)
	}
}

// TestLoadBackupCorrupt verifies an unparseable backup degrades to
// (false, nil) instead of failing the whole switch.
func TestLoadBackupCorrupt(t *testing.T) {
	dir := t.TempDir()
	s := NewAt(dir)
	if err := os.WriteFile(s.BackupPath(), []byte("!!!"), 0o600); err != nil {
		t.Fatal(err)
	}

	ok, backup := s.LoadBackup()
	if ok || backup != nil {
		t.Errorf("LoadBackup = (%v, %v), want (false, nil)", ok, backup)
	}
	if !s.HasBackupFile() {
		t.Error("HasBackupFile = false for an existing corrupt backup")
	}
}

// TestLoadBackupLegacyFormat verifies a bare settings-shaped backup is
// accepted as an implicit Anthropic backup with synthesized metadata.
func TestLoadBackupLegacyFormat(t *testing.T) {
	dir := t.TempDir()
	s := NewAt(dir)
	legacy := `{"env": {"ANTHROPIC_AUTH_TOKEN": "old-token"}}`
	if err := os.WriteFile(s.BackupPath(), []byte(legacy), 0o600); err != nil {
		t.Fatal(err)
	}

	before := time.Now().Unix()
	ok, backup := s.LoadBackup()
	after := time.Now().Unix()

	if !ok || backup == nil {
		t.Fatalf("LoadBackup = (%v, %v), want valid anthropic backup", ok, backup)
	}
	if backup.Metadata.Provider != "anthropic" {
		t.Errorf("provider = %q, want %q", backup.Metadata.Provider, "anthropic")
	}
	if backup.Metadata.CreatedAt < before || backup.Metadata.CreatedAt > after {
		t.Errorf("created_at = %d, want within [%d, %d]", backup.Metadata.CreatedAt, before, after)
	}
	if backup.Env["ANTHROPIC_AUTH_TOKEN"] != "old-token" {
		t.Errorf("env token = %q, want %q", backup.Env["ANTHROPIC_AUTH_TOKEN"], "old-token")
	}
}

// TestSaveBackupWritesMetadataAndSidecar verifies the new backup shape
// and the metadata sidecar.
func TestSaveBackupWritesMetadataAndSidecar(t *testing.T) {
	dir := t.TempDir()
	s := NewAt(dir)
	cfg := core.Config{Env: map[string]string{core.KeyAuthToken: "tok"}}

	if err := s.SaveBackup(cfg, core.ProviderAnthropic); err != nil {
		t.Fatalf("SaveBackup: %v", err)
	}

	ok, backup := s.LoadBackup()
	if !ok || backup == nil {
		t.Fatalf("LoadBackup = (%v, %v) after SaveBackup", ok, backup)
	}
	if backup.Metadata.Provider != "anthropic" || backup.Metadata.CreatedAt == 0 {
		t.Errorf("metadata = %+v, want anthropic with timestamp", backup.Metadata)
	}
	if backup.Env[core.KeyAuthToken] != "tok" {
		t.Errorf("env token = %q, want %q", backup.Env[core.KeyAuthToken], "tok")
	}

	// Sidecar holds the metadata alone.
	b, err := os.ReadFile(filepath.Join(dir, "settings.json.backup.meta"))
	if err != nil {
		t.Fatalf("read sidecar: %v", err)
	}
	var meta core.BackupMetadata
	if err := json.Unmarshal(b, &meta); err != nil {
		t.Fatalf("parse sidecar: %v", err)
	}
	if meta.Provider != "anthropic" || meta.Version == "" {
		t.Errorf("sidecar metadata = %+v", meta)
	}
}

// TestSaveBackupNonAnthropic verifies a backup tagged with another
// provider is not reported as a valid Anthropic backup.
func TestSaveBackupNonAnthropic(t *testing.T) {
	s := NewAt(t.TempDir())

	if err := s.SaveBackup(core.Config{}, core.ProviderCustom); err != nil {
		t.Fatalf("SaveBackup: %v", err)
	}
	ok, backup := s.LoadBackup()
	if ok {
		t.Error("custom-tagged backup reported as anthropic")
	}
	if backup == nil {
		t.Error("backup should still be returned for inspection")
	}
}

// TestSaveBackupOverwrites verifies saving twice keeps only the latest
// snapshot.
func TestSaveBackupOverwrites(t *testing.T) {
	s := NewAt(t.TempDir())

	if err := s.SaveBackup(core.Config{Env: map[string]string{"A": "1"}}, core.ProviderAnthropic); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveBackup(core.Config{Env: map[string]string{"B": "2"}}, core.ProviderAnthropic); err != nil {
		t.Fatal(err)
	}

	_, backup := s.LoadBackup()
	if backup == nil || backup.Env["B"] != "2" || backup.Env["A"] != "" {
		t.Errorf("backup env = %v, want only the second snapshot", backup.Env)
	}
}

func TestTokenLifecycle(t *testing.T) {
	s := NewAt(t.TempDir())

	// Absent file reads as empty.
	tok, err := s.LoadToken()
	if err != nil || tok != "" {
		t.Fatalf("LoadToken = (%q, %v), want empty", tok, err)
	}

	if err := s.SaveToken("sk-test1234"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	tok, err = s.LoadToken()
	if err != nil || tok != "sk-test1234" {
		t.Fatalf("LoadToken = (%q, %v), want sk-test1234", tok, err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(s.tokenFile)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("token file mode = %o, want 600", perm)
		}
	}

	if err := s.RemoveToken(); err != nil {
		t.Fatalf("RemoveToken: %v", err)
	}
	// Removing again is a no-op.
	if err := s.RemoveToken(); err != nil {
		t.Fatalf("RemoveToken (absent): %v", err)
	}
}

// TestLoadTokenTrims verifies surrounding whitespace is stripped and a
// whitespace-only file counts as absent.
func TestLoadTokenTrims(t *testing.T) {
	dir := t.TempDir()
	s := NewAt(dir)

	if err := os.WriteFile(filepath.Join(dir, ".z_ai_token"), []byte("  sk-abc\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	tok, err := s.LoadToken()
	if err != nil || tok != "sk-abc" {
		t.Errorf("LoadToken = (%q, %v), want sk-abc", tok, err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".z_ai_token"), []byte("   \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	tok, err = s.LoadToken()
	if err != nil || tok != "" {
		t.Errorf("LoadToken = (%q, %v), want empty for blank file", tok, err)
	}
}
