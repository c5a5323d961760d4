// Package switcher orchestrates switching the active settings between
// Anthropic (restore-from-backup) and GLM (backup-then-apply). Each
// operation returns a structured outcome for the CLI to render; the
// only side effects go through the store.
package switcher

import (
	"fmt"

	"ccswitch/internal/core"
	"ccswitch/internal/store"
)

// TokenSource supplies the GLM credential when switching. The concrete
// implementation checks an env var, then the saved token file, then
// prompts interactively.
type TokenSource interface {
	Token() (string, error)
}

// OutcomeKind is the terminal state of a switch operation.
type OutcomeKind int

const (
	// Switched means the settings file now points at the target provider.
	Switched OutcomeKind = iota
	// AlreadyActive means the settings already pointed at the target;
	// nothing was written.
	AlreadyActive
	// RestoredEmpty means no usable Anthropic backup existed, so an
	// empty settings file was written and a re-login is required. This
	// is a defined fallback, not an error.
	RestoredEmpty
)

// Outcome reports what a switch operation did.
type Outcome struct {
	Kind OutcomeKind
	From core.Provider

	// Backup handling during a switch to GLM.
	BackupCreated   bool
	BackupPreserved bool

	// Creation time (epoch seconds) of the backup that was restored,
	// preserved, or found; zero when unknown or absent.
	BackupCreatedAt int64

	// Advisory token warnings to show the user.
	Warnings []string
}

// BackupState summarizes the on-disk backup for status display.
type BackupState int

const (
	BackupMissing BackupState = iota
	BackupValid
	BackupUnknownFormat
)

// StatusReport is the read-only snapshot behind the status command.
type StatusReport struct {
	Provider core.Provider
	Env      map[string]string

	// Count of env keys unrelated to the GLM configuration (the auth
	// token is shown separately and not counted).
	OtherKeys int

	Backup          BackupState
	BackupCreatedAt int64
	BackupTokenKind core.TokenKind

	HasSavedToken bool
}

// Switcher runs the workflows against one store.
type Switcher struct {
	store *store.Store
}

func New(s *store.Store) *Switcher {
	return &Switcher{store: s}
}

// SwitchToAnthropic restores the Anthropic configuration from backup.
// Without a usable backup it writes an empty settings file so no GLM
// keys linger, and reports that a re-login is needed.
func (sw *Switcher) SwitchToAnthropic() (Outcome, error) {
	cfg, err := sw.store.LoadSettings()
	if err != nil {
		return Outcome{}, fmt.Errorf("load current config: %w", err)
	}

	from := core.DetectProvider(cfg)
	if from == core.ProviderAnthropic {
		return Outcome{Kind: AlreadyActive, From: from}, nil
	}

	isAnthropic, backup := sw.store.LoadBackup()
	if !isAnthropic || backup == nil {
		if err := sw.store.SaveSettings(core.Config{}); err != nil {
			return Outcome{}, fmt.Errorf("write empty config: %w", err)
		}
		return Outcome{Kind: RestoredEmpty, From: from}, nil
	}

	restored := core.Config{Env: make(map[string]string, len(backup.Env))}
	for k, v := range backup.Env {
		if core.IsGLMKey(k) {
			continue
		}
		restored.Env[k] = v
	}
	if err := sw.store.SaveSettings(restored); err != nil {
		return Outcome{}, fmt.Errorf("restore config: %w", err)
	}

	return Outcome{
		Kind:            Switched,
		From:            from,
		BackupCreatedAt: backup.Metadata.CreatedAt,
	}, nil
}

// SwitchToGLM backs up the current Anthropic configuration if needed,
// obtains a token, and applies the GLM env block.
func (sw *Switcher) SwitchToGLM(tokens TokenSource) (Outcome, error) {
	cfg, err := sw.store.LoadSettings()
	if err != nil {
		return Outcome{}, fmt.Errorf("load current config: %w", err)
	}

	from := core.DetectProvider(cfg)
	if from == core.ProviderGLM {
		return Outcome{Kind: AlreadyActive, From: from}, nil
	}

	out := Outcome{Kind: Switched, From: from}
	switch from {
	case core.ProviderAnthropic:
		// An existing valid backup is never overwritten: it may hold
		// the original login from before a previous switch.
		if ok, backup := sw.store.LoadBackup(); ok && backup != nil {
			out.BackupPreserved = true
			out.BackupCreatedAt = backup.Metadata.CreatedAt
		} else {
			if err := sw.store.SaveBackup(cfg, core.ProviderAnthropic); err != nil {
				return Outcome{}, fmt.Errorf("backup anthropic config: %w", err)
			}
			out.BackupCreated = true
		}
	case core.ProviderUnknown:
		// Nothing to back up; note whether an older backup exists.
		if ok, _ := sw.store.LoadBackup(); ok {
			out.BackupPreserved = true
		}
	case core.ProviderCustom:
		// Custom configs are not backed up; an Anthropic backup, if
		// any, stays untouched.
	}

	token, err := tokens.Token()
	if err != nil {
		return Outcome{}, fmt.Errorf("get GLM API token: %w", err)
	}
	_, out.Warnings = core.ValidateTokenForProvider(token, core.ProviderGLM)

	if err := sw.store.SaveSettings(core.GLMEnv(token)); err != nil {
		return Outcome{}, fmt.Errorf("save GLM config: %w", err)
	}
	return out, nil
}

// Status reports the current provider, backup, and saved-token state
// without mutating anything.
func (sw *Switcher) Status() (StatusReport, error) {
	cfg, err := sw.store.LoadSettings()
	if err != nil {
		return StatusReport{}, fmt.Errorf("load current config: %w", err)
	}

	rep := StatusReport{
		Provider: core.DetectProvider(cfg),
		Env:      cfg.Env,
	}
	for k := range cfg.Env {
		if !core.IsGLMKey(k) && k != core.KeyAuthToken {
			rep.OtherKeys++
		}
	}

	if isAnthropic, backup := sw.store.LoadBackup(); isAnthropic && backup != nil {
		rep.Backup = BackupValid
		rep.BackupCreatedAt = backup.Metadata.CreatedAt
		rep.BackupTokenKind = core.DetectTokenKind(backup.Env[core.KeyAuthToken])
	} else if sw.store.HasBackupFile() {
		rep.Backup = BackupUnknownFormat
	}

	if token, err := sw.store.LoadToken(); err == nil && token != "" {
		rep.HasSavedToken = true
	}
	return rep, nil
}
