package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/abdidvp/commitlint/internal/adapters/outbound/config"
	"github.com/abdidvp/commitlint/internal/domain"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a commitlint.toml configuration file",
		Long:  "Create a commitlint.toml holding the default rules, ready to be edited.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest, err := config.New(loggerFor(cmd)).WriteDefault(absPath, force)
			if err != nil {
				if errors.Is(err, domain.ErrConfigExists) {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.DefaultFileName)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", dest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing commitlint.toml")

	return cmd
}
