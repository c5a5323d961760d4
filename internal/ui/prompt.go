package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCanceled is returned when the user aborts a prompt with esc or ctrl+c.
var ErrCanceled = errors.New("canceled")

type tokenModel struct {
	label    string
	in       textinput.Model
	done     bool
	canceled bool
}

func newTokenModel(label string) tokenModel {
	in := textinput.New()
	in.Placeholder = "sk-..."
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	in.Focus()
	return tokenModel{label: label, in: in}
}

func (m tokenModel) Init() tea.Cmd { return textinput.Blink }

func (m tokenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.canceled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.in, cmd = m.in.Update(msg)
	return m, cmd
}

func (m tokenModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n%s\n",
		m.label,
		m.in.View(),
		styleMuted.Render("enter: confirm  esc: cancel"))
}

type confirmModel struct {
	question string
	answer   bool
	done     bool
	canceled bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.answer = true
		m.done = true
		return m, tea.Quit
	case "n", "N", "enter":
		m.done = true
		return m, tea.Quit
	case "esc", "ctrl+c":
		m.canceled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.question, styleMuted.Render("[y/N]"))
}

// Prompter runs interactive terminal prompts. It satisfies the token
// package's prompting interface.
type Prompter struct{}

// Token asks for a credential with masked echo and returns it trimmed.
func (Prompter) Token(label string) (string, error) {
	p := tea.NewProgram(newTokenModel(label))
	res, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run token prompt: %w", err)
	}
	m := res.(tokenModel)
	if m.canceled {
		return "", ErrCanceled
	}
	return strings.TrimSpace(m.in.Value()), nil
}

// Confirm asks a yes/no question; enter defaults to no.
func (Prompter) Confirm(question string) (bool, error) {
	p := tea.NewProgram(confirmModel{question: question})
	res, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("run confirm prompt: %w", err)
	}
	m := res.(confirmModel)
	if m.canceled {
		return false, ErrCanceled
	}
	return m.answer, nil
}
