package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleBanner  = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
)

func Successf(format string, a ...any) {
	fmt.Println(styleSuccess.Render(fmt.Sprintf(format, a...)))
}

func Warnf(format string, a ...any) {
	fmt.Println(styleWarn.Render(fmt.Sprintf(format, a...)))
}

func Infof(format string, a ...any) {
	fmt.Println(styleInfo.Render(fmt.Sprintf(format, a...)))
}

func Errorf(format string, a ...any) {
	fmt.Fprintln(os.Stderr, styleErr.Render(fmt.Sprintf(format, a...)))
}

// Banner prints a provider headline in a rounded box.
func Banner(text string) {
	fmt.Println(styleBanner.Render(text))
}

// Field prints an indented "Label: value" pair with a styled label.
func Field(label, value string) {
	fmt.Printf("  %s%s\n", styleInfo.Render(label+": "), value)
}
