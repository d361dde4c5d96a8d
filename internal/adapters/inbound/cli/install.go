package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/commitlint/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/commitlint/internal/adapters/outbound/hooks"
	"github.com/abdidvp/commitlint/internal/domain"
	"github.com/spf13/cobra"
)

func newInstallCmd() *cobra.Command {
	var (
		path   string
		binary string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the commit-msg git hook",
		Long:  "Write a commit-msg hook that runs `commitlint check --edit` on every commit. core.hooksPath is honoured.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, absPath, err := hookManager(cmd, path)
			if err != nil {
				return err
			}
			if binary == "" {
				binary = selfBinary()
			}

			hookPath, err := mgr.Install(absPath, binary, force)
			if err != nil {
				if errors.Is(err, domain.ErrHookExists) {
					fmt.Fprintf(cmd.OutOrStdout(), "Hook already installed at %s\n", hookPath)
					return nil
				}
				return fmt.Errorf("installing hook: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Installed commit-msg hook at %s\n", hookPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Repository path")
	cmd.Flags().StringVar(&binary, "binary", "", "commitlint binary the hook runs (defaults to this executable)")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing commit-msg hook")

	return cmd
}

func newUninstallCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the commit-msg git hook",
		Long:  "Remove the commit-msg hook if commitlint installed it. Hooks written by other tools are left in place.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, absPath, err := hookManager(cmd, path)
			if err != nil {
				return err
			}

			hookPath, err := mgr.Uninstall(absPath)
			switch {
			case errors.Is(err, os.ErrNotExist):
				fmt.Fprintln(cmd.OutOrStdout(), "No commit-msg hook found")
				return nil
			case errors.Is(err, domain.ErrForeignHook):
				fmt.Fprintf(cmd.OutOrStdout(), "Hook at %s was not installed by commitlint, leaving it in place\n", hookPath)
				return nil
			case err != nil:
				return fmt.Errorf("uninstalling hook: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed commit-msg hook at %s\n", hookPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Repository path")

	return cmd
}

// hookManager resolves path and refuses to continue outside a git repository.
func hookManager(cmd *cobra.Command, path string) (domain.HookManager, string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path: %w", err)
	}
	git := gitinfo.New()
	if !git.IsGitRepo(absPath) {
		return nil, "", fmt.Errorf("%s: %w", absPath, domain.ErrNotGitRepo)
	}
	return hooks.New(git, loggerFor(cmd)), absPath, nil
}

// selfBinary returns the running executable, or "commitlint" from PATH when
// it cannot be determined.
func selfBinary() string {
	exe, err := os.Executable()
	if err != nil {
		return "commitlint"
	}
	return exe
}
