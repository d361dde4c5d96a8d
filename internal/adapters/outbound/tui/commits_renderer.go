package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/commitlint/internal/domain"
)

// RenderCommitReports formats the results of linting a commit range, one
// entry per commit in the given order, followed by a summary box.
func RenderCommitReports(reports []domain.CommitReport) string {
	if len(reports) == 0 {
		return "  " + dimStyle.Render("No commits to check.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")

	invalid := 0
	for _, r := range reports {
		icon := passStyle.Render("✔")
		switch {
		case r.Result.Ignored:
			icon = skipStyle.Render("○")
		case !r.Result.Valid:
			icon = failStyle.Render("✖")
			invalid++
		}

		fmt.Fprintf(&b, "  %s %s  %s\n", icon, faintStyle.Render(shortHash(r.Hash)), titleStyle.Render(headerOf(r.Result)))
		if !r.Result.Valid {
			renderViolations(&b, r.Result.Violations, "      ")
		}
	}

	summary := passStyle.Render(fmt.Sprintf("%s checked, all valid", commitCount(len(reports))))
	if invalid > 0 {
		summary = failStyle.Render(fmt.Sprintf("%d of %d commits invalid", invalid, len(reports)))
	}
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(summary))
	b.WriteString("\n")
	return b.String()
}

func commitCount(n int) string {
	if n == 1 {
		return "1 commit"
	}
	return fmt.Sprintf("%d commits", n)
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	if hash == "" {
		return "·······"
	}
	return hash
}

func headerOf(result domain.LintResult) string {
	if result.Commit != nil {
		return result.Commit.Header
	}
	return "(ignored)"
}
