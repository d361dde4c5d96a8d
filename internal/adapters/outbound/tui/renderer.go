package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/commitlint/internal/domain"
)

// ── palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	faintStyle   = lipgloss.NewStyle().Foreground(faint)
	passStyle    = lipgloss.NewStyle().Foreground(success)
	failStyle    = lipgloss.NewStyle().Foreground(danger)
	skipStyle    = lipgloss.NewStyle().Foreground(warning)
	ruleTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(fg)
)

// RenderLintResult formats one lint result for the terminal. Each violation
// is printed as "[rule] message".
func RenderLintResult(result domain.LintResult) string {
	var b strings.Builder

	switch {
	case result.Ignored:
		b.WriteString("  " + skipStyle.Render("○") + " " + dimStyle.Render("message ignored by configuration") + "\n")
		return b.String()
	case result.Valid:
		b.WriteString("  " + passStyle.Render("✔") + " " + titleStyle.Render("commit message is valid") + "\n")
		return b.String()
	}

	if result.Commit != nil {
		b.WriteString("  " + failStyle.Render("✖") + " " + titleStyle.Render(result.Commit.Header) + "\n\n")
	}
	renderViolations(&b, result.Violations, "    ")
	b.WriteString("\n  " + failStyle.Render(problemCount(len(result.Violations))) + "\n")
	return b.String()
}

func renderViolations(b *strings.Builder, violations []domain.Violation, indent string) {
	width := 0
	for _, v := range violations {
		width = max(width, len(v.Rule)+2)
	}
	for _, v := range violations {
		tag := ruleTagStyle.Render(padRight("["+string(v.Rule)+"]", width))
		fmt.Fprintf(b, "%s%s %s\n", indent, tag, dimStyle.Render(v.Message))
	}
}

func problemCount(n int) string {
	if n == 1 {
		return "1 problem"
	}
	return fmt.Sprintf("%d problems", n)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
