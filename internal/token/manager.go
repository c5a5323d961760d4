// Package token resolves the GLM credential: environment variable
// first, then the saved token file, then an interactive prompt.
package token

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"ccswitch/internal/store"
)

// ErrEmptyToken is returned when the interactive prompt yields blank input.
var ErrEmptyToken = errors.New("token cannot be empty")

// Env vars checked for a GLM credential, in order.
var envVars = []string{"GLM_AUTH_TOKEN", "Z_AI_AUTH_TOKEN"}

// Prompter asks the user for input; implemented by ui.Prompter.
type Prompter interface {
	Token(label string) (string, error)
	Confirm(question string) (bool, error)
}

// Manager hands out tokens and manages the saved token file.
type Manager struct {
	store  *store.Store
	prompt Prompter
	out    io.Writer
}

func NewManager(s *store.Store, p Prompter) *Manager {
	return &Manager{store: s, prompt: p, out: os.Stdout}
}

// SetOutput redirects progress messages, mainly for tests.
func (m *Manager) SetOutput(w io.Writer) { m.out = w }

// Token resolves a credential. A token entered at the prompt is
// optionally persisted for later runs.
func (m *Manager) Token() (string, error) {
	for _, name := range envVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			fmt.Fprintf(m.out, "Using token from %s environment variable\n", name)
			return v, nil
		}
	}

	if saved, err := m.store.LoadToken(); err == nil && saved != "" {
		fmt.Fprintln(m.out, "Using token from saved token file")
		return saved, nil
	}

	tok, err := m.prompt.Token("Enter your GLM API token:")
	if err != nil {
		return "", err
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return "", ErrEmptyToken
	}

	if save, err := m.prompt.Confirm("Save token for future use?"); err == nil && save {
		if err := m.store.SaveToken(tok); err != nil {
			fmt.Fprintf(m.out, "Failed to save token: %v\n", err)
		} else {
			fmt.Fprintln(m.out, "Token saved")
		}
	}
	return tok, nil
}

// ClearSaved removes the saved token file. It reports whether there was
// anything to clear; a missing file is not an error.
func (m *Manager) ClearSaved() (bool, error) {
	saved, err := m.store.LoadToken()
	if err != nil {
		return false, fmt.Errorf("check saved token: %w", err)
	}
	if saved == "" {
		return false, nil
	}
	if err := m.store.RemoveToken(); err != nil {
		return false, err
	}
	return true, nil
}
