package main

import (
	"os"

	"github.com/spf13/cobra"

	"ccswitch/internal/install"
	"ccswitch/internal/store"
	"ccswitch/internal/switcher"
	"ccswitch/internal/token"
	"ccswitch/internal/ui"
	"ccswitch/internal/version"
)

func main() {
	root := &cobra.Command{
		Use:   version.Name,
		Short: "Switch Claude Code between the Anthropic API and GLM",
		Long: `Switch Claude Code between API providers by rewriting
~/.claude/settings.json. Switching to GLM backs up the Anthropic
configuration; switching back restores it.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(anthropicCmd(), glmCmd(), statusCmd(), clearTokenCmd(), installCmd())

	if err := root.Execute(); err != nil {
		ui.Errorf("Error: %v", err)
		os.Exit(1)
	}
}

func newSwitcher() (*switcher.Switcher, *store.Store, error) {
	s, err := store.New()
	if err != nil {
		return nil, nil, err
	}
	return switcher.New(s), s, nil
}

func anthropicCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "anthropic",
		Aliases: []string{"a"},
		Short:   "Switch to the Anthropic API (restore configuration)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sw, _, err := newSwitcher()
			if err != nil {
				return err
			}
			ui.Infof("Switching to Anthropic API...")
			out, err := sw.SwitchToAnthropic()
			if err != nil {
				return err
			}
			renderAnthropic(out)
			return nil
		},
	}
}

func glmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "glm",
		Aliases: []string{"g"},
		Short:   "Switch to the GLM API (use API key)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sw, s, err := newSwitcher()
			if err != nil {
				return err
			}
			ui.Infof("Switching to GLM API...")
			out, err := sw.SwitchToGLM(token.NewManager(s, ui.Prompter{}))
			if err != nil {
				return err
			}
			renderGLM(out)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"s"},
		Short:   "Show the current configuration",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sw, _, err := newSwitcher()
			if err != nil {
				return err
			}
			rep, err := sw.Status()
			if err != nil {
				return err
			}
			renderStatus(rep)
			return nil
		},
	}
}

func clearTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-token",
		Short: "Remove the saved GLM API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, s, err := newSwitcher()
			if err != nil {
				return err
			}
			removed, err := token.NewManager(s, ui.Prompter{}).ClearSaved()
			if err != nil {
				return err
			}
			if removed {
				ui.Successf("Saved token removed")
			} else {
				ui.Warnf("No saved token found")
			}
			return nil
		},
	}
}

func installCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the binary and shell aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return install.Install()
		},
	}
}
