package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdidvp/commitlint/internal/adapters/outbound/cache"
	"github.com/abdidvp/commitlint/internal/adapters/outbound/config"
	"github.com/abdidvp/commitlint/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/commitlint/internal/adapters/outbound/tui"
	"github.com/abdidvp/commitlint/internal/application"
	"github.com/abdidvp/commitlint/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// scissorsLine marks the start of the diff git appends with `commit -v`.
const scissorsLine = "# ------------------------ >8 ------------------------"

func newCheckCmd() *cobra.Command {
	var (
		message    string
		editFile   string
		rev        string
		from       string
		to         string
		last       int
		configPath string
		path       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a commit message",
		Long: `Validate a commit message against the commitlint configuration.

The message is taken from --message, from a file (--edit, as passed by the
commit-msg hook), from a commit (--rev), from a range of commits
(--from/--to/--last) or, when none is given, from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			flags := cmd.Flags()
			isRange := flags.Changed("from") || flags.Changed("to") || flags.Changed("last")
			sources := 0
			for _, set := range []bool{flags.Changed("message"), editFile != "", rev != "", isRange} {
				if set {
					sources++
				}
			}
			if sources > 1 {
				return fmt.Errorf("use only one of --message, --edit, --rev or --from/--to/--last")
			}

			log := loggerFor(cmd)
			svc := newLintService(log)
			ws := application.Workspace{Dir: absPath, ConfigFile: configPath}

			switch {
			case isRange:
				reports, err := svc.LintRange(cmd.Context(), ws, from, to, last)
				if err != nil {
					return fmt.Errorf("check failed: %w", err)
				}
				return renderReports(cmd, reports, jsonOutput)
			case rev != "":
				report, err := svc.LintRevision(ws, rev)
				if err != nil {
					return fmt.Errorf("check failed: %w", err)
				}
				return renderReports(cmd, []domain.CommitReport{report}, jsonOutput)
			}

			raw, err := readMessage(cmd, flags.Changed("message"), message, editFile)
			if err != nil {
				return err
			}
			result, err := svc.LintMessage(ws, raw)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}
			return renderResult(cmd, result, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message to validate")
	cmd.Flags().StringVar(&editFile, "edit", "", "Read the message from a file, as git passes to commit-msg hooks")
	cmd.Flags().StringVar(&rev, "rev", "", "Validate the message of this commit")
	cmd.Flags().StringVar(&from, "from", "", "Validate commits after this revision (exclusive)")
	cmd.Flags().StringVar(&to, "to", "HEAD", "Validate commits up to this revision (inclusive)")
	cmd.Flags().IntVar(&last, "last", 0, "Validate at most the last N commits")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (skips discovery)")
	cmd.Flags().StringVar(&path, "path", ".", "Repository path, used for configuration discovery and git lookups")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newLintService(log *logrus.Logger) *application.LintService {
	return application.NewLintService(
		config.New(log),
		gitinfo.New(),
		cache.New(0, 0),
		log,
	)
}

func readMessage(cmd *cobra.Command, hasMessage bool, message, editFile string) (string, error) {
	switch {
	case hasMessage:
		return message, nil
	case editFile != "":
		data, err := os.ReadFile(editFile)
		if err != nil {
			return "", fmt.Errorf("reading message file: %w", err)
		}
		return stripComments(string(data)), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// stripComments removes what git itself strips from an edited message:
// comment lines and everything below the scissors line.
func stripComments(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimRight(line, "\r") == scissorsLine {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimRight(strings.Join(kept, "\n"), "\n") + "\n"
}

func renderResult(cmd *cobra.Command, result domain.LintResult, jsonOutput bool) error {
	if jsonOutput {
		if err := writeJSON(cmd, result); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderLintResult(result))
	}

	if !result.Valid {
		return fmt.Errorf("commit message validation failed: %d violation(s)", len(result.Violations))
	}
	return nil
}

func renderReports(cmd *cobra.Command, reports []domain.CommitReport, jsonOutput bool) error {
	if jsonOutput {
		if err := writeJSON(cmd, reports); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderCommitReports(reports))
	}

	invalid := 0
	for _, r := range reports {
		if !r.Result.Valid {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("commit message validation failed: %d of %d commit(s) invalid", invalid, len(reports))
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
