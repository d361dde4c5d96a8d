// Package lint validates commit messages against a commitlint configuration.
// A Linter is compiled once per configuration and is then safe to share
// between goroutines: Lint has no side effects and keeps no state.
package lint

import (
	"fmt"
	"strings"

	"github.com/abdidvp/commitlint/internal/domain"
	"github.com/abdidvp/commitlint/internal/domain/casing"
)

// Linter is a compiled configuration.
type Linter struct {
	cfg          domain.Config
	grammar      *Grammar
	ignores      *IgnoreMatcher
	typeCase     casing.Family
	scopeCase    casing.Family
	subjectCases []casing.Family
}

// New compiles cfg. Patterns and case names are resolved here so that Lint
// never meets an invalid configuration.
func New(cfg domain.Config) (*Linter, error) {
	grammar, err := CompileGrammar(cfg.Parser.Pattern, cfg.Parser.Correspondence)
	if err != nil {
		return nil, err
	}
	ignores, err := NewIgnoreMatcher(cfg.Ignores)
	if err != nil {
		return nil, err
	}

	l := &Linter{cfg: cfg, grammar: grammar, ignores: ignores}
	if l.typeCase, err = optionalFamily(cfg.Rules.Type.Case); err != nil {
		return nil, fmt.Errorf("rules.type.case: %w", err)
	}
	if l.scopeCase, err = optionalFamily(cfg.Rules.Scope.Case); err != nil {
		return nil, fmt.Errorf("rules.scope.case: %w", err)
	}
	if l.subjectCases, err = casing.ParseAll(cfg.Rules.SubjectCase); err != nil {
		return nil, fmt.Errorf("rules.subject_case: %w", err)
	}
	return l, nil
}

// Lint is a convenience for New followed by Linter.Lint.
func Lint(raw string, cfg domain.Config) (domain.LintResult, error) {
	l, err := New(cfg)
	if err != nil {
		return domain.LintResult{}, err
	}
	return l.Lint(raw), nil
}

// Config returns the configuration the linter was compiled from.
func (l *Linter) Config() domain.Config { return l.cfg }

// Lint validates one raw commit message. Ignored messages are valid without
// further inspection. A header that does not match the grammar yields a
// header-malformed violation and only the header length rules run after it.
func (l *Linter) Lint(raw string) domain.LintResult {
	if l.ignores.IsIgnored(raw) {
		return domain.LintResult{Valid: true, Ignored: true, Violations: []domain.Violation{}}
	}

	blocks := Split(strings.ReplaceAll(raw, "\r\n", "\n"))
	commit := l.parse(raw, blocks)
	e := &evaluation{commit: commit, blocks: blocks}

	violations := []domain.Violation{}
	if !commit.Parsed {
		violations = append(violations, domain.Violation{
			Rule:    domain.RuleHeaderMalformed,
			Field:   domain.FieldHeader,
			Message: fmt.Sprintf("%s: %q", ErrHeaderMalformed, commit.Header),
		})
	}
	for _, r := range ruleTable {
		if r.structural && !commit.Parsed {
			continue
		}
		if !r.applies(l, e) {
			continue
		}
		violations = append(violations, r.check(l, e)...)
	}

	return domain.LintResult{
		Valid:      len(violations) == 0,
		Violations: violations,
		Commit:     commit,
	}
}

func (l *Linter) parse(raw string, blocks Blocks) *domain.CommitMessage {
	commit := &domain.CommitMessage{
		Raw:    raw,
		Header: blocks.Header(),
		Body:   blocks.Body(),
		Footer: blocks.Footer(),
	}
	commit.Trailers = ParseTrailers(commit.Footer)

	if fields, err := l.grammar.Parse(commit.Header); err == nil {
		commit.Parsed = true
		commit.Type = fields.Type
		commit.Scope = fields.Scope
		commit.Subject = fields.Subject
		commit.Breaking = fields.Breaking
	}
	for _, line := range commit.Footer {
		if IsBreakingChange(line) {
			commit.Breaking = true
			break
		}
	}
	return commit
}

func optionalFamily(name string) (casing.Family, error) {
	if name == "" {
		return "", nil
	}
	return casing.Parse(name)
}
