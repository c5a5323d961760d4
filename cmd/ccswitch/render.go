package main

import (
	"strconv"
	"time"

	"ccswitch/internal/core"
	"ccswitch/internal/switcher"
	"ccswitch/internal/ui"
)

func formatEpoch(sec int64) string {
	return time.Unix(sec, 0).UTC().Format("2006-01-02 15:04:05 UTC")
}

func renderAnthropic(out switcher.Outcome) {
	switch out.Kind {
	case switcher.AlreadyActive:
		ui.Warnf("Already using Anthropic configuration")
		ui.Infof("Use the status command to check current settings")
	case switcher.RestoredEmpty:
		ui.Warnf("No valid Anthropic backup found")
		ui.Warnf("Created empty configuration; re-login to Claude Code required")
	case switcher.Switched:
		if out.BackupCreatedAt != 0 {
			ui.Infof("Restoring from backup created at %s", formatEpoch(out.BackupCreatedAt))
		}
		ui.Successf("Anthropic configuration restored from backup")
	}
}

func renderGLM(out switcher.Outcome) {
	if out.Kind == switcher.AlreadyActive {
		ui.Warnf("Already using GLM configuration")
		ui.Infof("Use the status command to check current settings")
		return
	}

	switch out.From {
	case core.ProviderAnthropic:
		if out.BackupPreserved {
			ui.Infof("Existing Anthropic backup found (preserving it)")
			if out.BackupCreatedAt != 0 {
				ui.Infof("  Backed up at: %s", formatEpoch(out.BackupCreatedAt))
			}
		} else if out.BackupCreated {
			ui.Successf("Anthropic configuration backed up")
		}
	case core.ProviderUnknown:
		if out.BackupPreserved {
			ui.Infof("Using existing Anthropic backup")
		} else {
			ui.Warnf("No Anthropic configuration to back up")
			ui.Warnf("You may need to re-login when switching back")
		}
	case core.ProviderCustom:
		ui.Warnf("Current config is a custom provider; not backing up")
		ui.Warnf("An Anthropic backup will be preserved if it exists")
	}

	for _, w := range out.Warnings {
		ui.Warnf("Warning: %s", w)
	}

	ui.Successf("GLM configuration applied successfully")
	ui.Infof("To switch back to Anthropic: %s", "ccswitch anthropic")
}

func renderStatus(rep switcher.StatusReport) {
	switch rep.Provider {
	case core.ProviderGLM:
		ui.Banner("Provider: Z.AI (GLM Models)")
		ui.Field("Base URL", rep.Env[core.KeyBaseURL])
		if v := rep.Env[core.KeySonnetModel]; v != "" {
			ui.Field("Sonnet Model", v)
		}
		if v := rep.Env[core.KeyOpusModel]; v != "" {
			ui.Field("Opus Model", v)
		}
		if v := rep.Env[core.KeyHaikuModel]; v != "" {
			ui.Field("Haiku Model", v)
		}
		if v := rep.Env[core.KeyTimeout]; v != "" {
			ui.Field("Timeout", v+" ms")
		}
		if tok := rep.Env[core.KeyAuthToken]; tok != "" {
			ui.Field("Auth Token", core.MaskToken(tok)+" ("+core.DetectTokenKind(tok).String()+")")
		}
	case core.ProviderAnthropic:
		ui.Banner("Provider: Anthropic (Default)")
		ui.Field("Base URL", "api.anthropic.com (default)")
	case core.ProviderCustom:
		ui.Banner("Provider: Custom")
		ui.Field("Base URL", rep.Env[core.KeyBaseURL])
	case core.ProviderUnknown:
		ui.Warnf("No configuration found (empty or missing)")
		return
	}

	if rep.OtherKeys > 0 {
		ui.Field("Other env vars", strconv.Itoa(rep.OtherKeys))
	}

	switch rep.Backup {
	case switcher.BackupValid:
		ui.Infof("Backup: available (Anthropic)")
		if rep.BackupCreatedAt != 0 {
			ui.Field("Created", formatEpoch(rep.BackupCreatedAt))
		}
		switch rep.BackupTokenKind {
		case core.TokenAnthropicWeb:
			ui.Field("Token", "web login token")
		case core.TokenGLMKey:
			ui.Field("Token", "API key (unexpected)")
		}
	case switcher.BackupUnknownFormat:
		ui.Warnf("Backup: available (unknown format)")
	case switcher.BackupMissing:
		ui.Warnf("Backup: not found")
	}

	if rep.HasSavedToken {
		ui.Infof("Saved token: available")
	}
}
