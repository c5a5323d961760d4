// Package install copies the binary into /usr/local/bin and adds shell
// aliases to the user's rc file.
package install

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"ccswitch/internal/ui"
	"ccswitch/internal/version"
)

const aliasMarker = "# Claude Code API Switcher"

// Install places the binary at /usr/local/bin and wires shell aliases.
func Install() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}

	target := filepath.Join("/usr/local/bin", version.Name)
	if exe != target {
		if err := installBinary(exe, target); err != nil {
			return err
		}
	} else {
		ui.Infof("Binary already installed at %s", target)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get home directory: %w", err)
	}
	rcs := shellConfigs(home, os.Getenv("SHELL"))
	if len(rcs) == 0 {
		return fmt.Errorf("no supported shell configuration found")
	}

	installed := 0
	for _, rc := range rcs {
		added, err := addAliases(rc, target)
		if err != nil {
			return err
		}
		if added {
			ui.Successf("Aliases added to %s", rc)
			installed++
		} else {
			ui.Warnf("Aliases already exist in %s", rc)
		}
	}
	if installed == 0 {
		ui.Warnf("No new aliases were installed")
	}

	ui.Infof("Reload your shell to pick up the aliases:")
	for _, rc := range rcs {
		fmt.Printf("  source %s\n", rc)
	}
	return nil
}

// installBinary copies the running binary into place, retrying through
// sudo when the direct write is denied.
func installBinary(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source binary: %w", err)
	}

	if err := os.WriteFile(dst, data, 0o755); err != nil {
		ui.Warnf("Need sudo permission to install to %s", filepath.Dir(dst))

		tmp := filepath.Join(os.TempDir(), version.Name+"-install")
		if err := os.WriteFile(tmp, data, 0o755); err != nil {
			return fmt.Errorf("write temp binary: %w", err)
		}
		defer os.Remove(tmp)

		cmd := fmt.Sprintf("sudo cp %s %s && sudo chmod +x %s", tmp, dst, dst)
		out, err := exec.Command("bash", "-c", cmd).CombinedOutput()
		if err != nil {
			return fmt.Errorf("install binary (try running with sudo): %s", strings.TrimSpace(string(out)))
		}
	}
	ui.Successf("Binary installed to %s", dst)
	return nil
}

// shellConfigs picks the rc file of the current shell, falling back to
// the first existing candidate.
func shellConfigs(home, shell string) []string {
	candidates := []struct {
		path  string
		shell string
	}{
		{filepath.Join(home, ".zshrc"), "zsh"},
		{filepath.Join(home, ".bashrc"), "bash"},
		{filepath.Join(home, ".bash_profile"), "bash"},
		{filepath.Join(home, ".config", "fish", "config.fish"), "fish"},
	}

	for _, c := range candidates {
		if strings.Contains(shell, c.shell) && exists(c.path) {
			return []string{c.path}
		}
	}
	for _, c := range candidates {
		if exists(c.path) {
			return []string{c.path}
		}
	}
	return nil
}

// addAliases appends the alias block to an rc file unless the marker is
// already present. Returns whether the block was added.
func addAliases(rc, bin string) (bool, error) {
	content, err := os.ReadFile(rc)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read %s: %w", rc, err)
	}
	if strings.Contains(string(content), aliasMarker) {
		return false, nil
	}

	block := aliasBlock(bin, strings.Contains(rc, "fish"))
	f, err := os.OpenFile(rc, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", rc, err)
	}
	defer f.Close()
	if _, err := f.WriteString(block); err != nil {
		return false, fmt.Errorf("write %s: %w", rc, err)
	}
	return true, nil
}

func aliasBlock(bin string, fish bool) string {
	// Fish does not take the = in alias definitions.
	eq := "="
	if fish {
		eq = " "
	}
	quote := func(s string) string { return "'" + s + "'" }
	return fmt.Sprintf(`
%s
alias claude-switch%s%s
alias claude-anthropic%s%s
alias claude-glm%s%s
alias claude-status%s%s
`,
		aliasMarker,
		eq, quote(bin),
		eq, quote(bin+" anthropic"),
		eq, quote(bin+" glm"),
		eq, quote(bin+" status"))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
