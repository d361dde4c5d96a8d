package lint

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abdidvp/commitlint/internal/domain"
	"github.com/abdidvp/commitlint/internal/domain/casing"
)

// evaluation is the per-message state every rule reads.
type evaluation struct {
	commit *domain.CommitMessage
	blocks Blocks
}

// rule is one entry of the rule table. Structural rules read extracted
// header fields or blocks and are skipped when the header is malformed.
type rule struct {
	id         domain.RuleID
	structural bool
	applies    func(l *Linter, e *evaluation) bool
	check      func(l *Linter, e *evaluation) []domain.Violation
}

// ruleTable fixes evaluation order. Output order follows this table.
var ruleTable = []rule{
	{
		id:         domain.RuleTypeEnum,
		structural: true,
		applies:    func(l *Linter, _ *evaluation) bool { return len(l.cfg.Rules.Type.Enum) > 0 },
		check:      checkTypeEnum,
	},
	{
		id:         domain.RuleTypeCase,
		structural: true,
		applies:    func(l *Linter, e *evaluation) bool { return l.typeCase != "" && e.commit.Type != nil },
		check:      checkTypeCase,
	},
	{
		id:         domain.RuleScopeEnum,
		structural: true,
		applies:    func(l *Linter, e *evaluation) bool { return len(l.cfg.Rules.Scope.Enum) > 0 && e.commit.Scope != nil },
		check:      checkScopeEnum,
	},
	{
		id:         domain.RuleScopeCase,
		structural: true,
		applies:    func(l *Linter, e *evaluation) bool { return l.scopeCase != "" && e.commit.Scope != nil },
		check:      checkScopeCase,
	},
	{
		id:         domain.RuleSubjectCase,
		structural: true,
		applies:    func(l *Linter, _ *evaluation) bool { return len(l.subjectCases) > 0 },
		check:      checkSubjectCase,
	},
	{
		id:         domain.RuleSubjectEmpty,
		structural: true,
		applies:    func(l *Linter, _ *evaluation) bool { return !l.cfg.Rules.SubjectEmpty },
		check:      checkSubjectEmpty,
	},
	{
		id:         domain.RuleSubjectFullStop,
		structural: true,
		applies:    func(l *Linter, e *evaluation) bool { return l.cfg.Rules.SubjectFullStop != "" && e.commit.Subject != nil },
		check:      checkSubjectFullStop,
	},
	{
		id:      domain.RuleHeaderMaxLength,
		applies: func(l *Linter, _ *evaluation) bool { return l.cfg.Rules.HeaderMaxLength > 0 },
		check:   checkHeaderMaxLength,
	},
	{
		id:      domain.RuleHeaderMinLength,
		applies: func(l *Linter, _ *evaluation) bool { return l.cfg.Rules.HeaderMinLength > 0 },
		check:   checkHeaderMinLength,
	},
	{
		id:         domain.RuleBodyLeadingBlank,
		structural: true,
		applies:    func(l *Linter, e *evaluation) bool { return l.cfg.Rules.BodyLeadingBlank && e.blocks.HasBody() },
		check:      checkBodyLeadingBlank,
	},
	{
		id:         domain.RuleBodyMaxLineLength,
		structural: true,
		applies:    func(l *Linter, e *evaluation) bool { return l.cfg.Rules.BodyMaxLineLength > 0 && e.blocks.HasBody() },
		check:      checkBodyMaxLineLength,
	},
	{
		id:         domain.RuleFooterLeadingBlank,
		structural: true,
		applies:    func(l *Linter, e *evaluation) bool { return l.cfg.Rules.FooterLeadingBlank && e.blocks.HasFooter() },
		check:      checkFooterLeadingBlank,
	},
	{
		id:         domain.RuleFooterMaxLineLength,
		structural: true,
		applies:    func(l *Linter, e *evaluation) bool { return l.cfg.Rules.FooterMaxLineLength > 0 && e.blocks.HasFooter() },
		check:      checkFooterMaxLineLength,
	},
}

// RuleOrder returns the rule ids in evaluation order, header-malformed first.
func RuleOrder() []domain.RuleID {
	ids := []domain.RuleID{domain.RuleHeaderMalformed}
	for _, r := range ruleTable {
		ids = append(ids, r.id)
	}
	return ids
}

func violation(id domain.RuleID, field, format string, args ...any) []domain.Violation {
	return []domain.Violation{{Rule: id, Field: field, Message: fmt.Sprintf(format, args...)}}
}

func checkTypeEnum(l *Linter, e *evaluation) []domain.Violation {
	enum := l.cfg.Rules.Type.Enum
	if e.commit.Type == nil {
		return violation(domain.RuleTypeEnum, domain.FieldType, "type may not be empty, must be one of [%s]", strings.Join(enum, ", "))
	}
	if !contains(enum, *e.commit.Type) {
		return violation(domain.RuleTypeEnum, domain.FieldType, "type %q must be one of [%s]", *e.commit.Type, strings.Join(enum, ", "))
	}
	return nil
}

func checkTypeCase(l *Linter, e *evaluation) []domain.Violation {
	if casing.Matches(*e.commit.Type, l.typeCase) {
		return nil
	}
	return violation(domain.RuleTypeCase, domain.FieldType, "type must be %s", l.typeCase)
}

func checkScopeEnum(l *Linter, e *evaluation) []domain.Violation {
	enum := l.cfg.Rules.Scope.Enum
	if contains(enum, *e.commit.Scope) {
		return nil
	}
	return violation(domain.RuleScopeEnum, domain.FieldScope, "scope %q must be one of [%s]", *e.commit.Scope, strings.Join(enum, ", "))
}

func checkScopeCase(l *Linter, e *evaluation) []domain.Violation {
	if casing.Matches(*e.commit.Scope, l.scopeCase) {
		return nil
	}
	return violation(domain.RuleScopeCase, domain.FieldScope, "scope must be %s", l.scopeCase)
}

func checkSubjectCase(l *Linter, e *evaluation) []domain.Violation {
	if casing.MatchesAny(deref(e.commit.Subject), l.subjectCases) {
		return nil
	}
	names := make([]string, len(l.subjectCases))
	for i, f := range l.subjectCases {
		names[i] = string(f)
	}
	return violation(domain.RuleSubjectCase, domain.FieldSubject, "subject must match one of: %s", strings.Join(names, ", "))
}

func checkSubjectEmpty(_ *Linter, e *evaluation) []domain.Violation {
	if strings.TrimSpace(deref(e.commit.Subject)) != "" {
		return nil
	}
	return violation(domain.RuleSubjectEmpty, domain.FieldSubject, "subject may not be empty")
}

func checkSubjectFullStop(l *Linter, e *evaluation) []domain.Violation {
	stop := l.cfg.Rules.SubjectFullStop
	if !strings.HasSuffix(*e.commit.Subject, stop) {
		return nil
	}
	return violation(domain.RuleSubjectFullStop, domain.FieldSubject, "subject must not end with '%s'", stop)
}

func checkHeaderMaxLength(l *Linter, e *evaluation) []domain.Violation {
	limit := l.cfg.Rules.HeaderMaxLength
	if n := utf8.RuneCountInString(e.commit.Header); n > limit {
		return violation(domain.RuleHeaderMaxLength, domain.FieldHeader,
			"header must not be longer than %d characters, current length is %d", limit, n)
	}
	return nil
}

func checkHeaderMinLength(l *Linter, e *evaluation) []domain.Violation {
	limit := l.cfg.Rules.HeaderMinLength
	if n := utf8.RuneCountInString(e.commit.Header); n < limit {
		return violation(domain.RuleHeaderMinLength, domain.FieldHeader,
			"header must be at least %d characters, current length is %d", limit, n)
	}
	return nil
}

func checkBodyLeadingBlank(_ *Linter, e *evaluation) []domain.Violation {
	if e.blocks.BodyLeadingBlank() {
		return nil
	}
	return violation(domain.RuleBodyLeadingBlank, domain.FieldBody, "body must have leading blank line")
}

func checkFooterLeadingBlank(_ *Linter, e *evaluation) []domain.Violation {
	if e.blocks.FooterLeadingBlank() {
		return nil
	}
	return violation(domain.RuleFooterLeadingBlank, domain.FieldFooter, "footer must have leading blank line")
}

func checkBodyMaxLineLength(l *Linter, e *evaluation) []domain.Violation {
	return lineLengths(domain.RuleBodyMaxLineLength, domain.FieldBody,
		e.blocks.Body(), e.blocks.BodyStart, l.cfg.Rules.BodyMaxLineLength)
}

func checkFooterMaxLineLength(l *Linter, e *evaluation) []domain.Violation {
	return lineLengths(domain.RuleFooterMaxLineLength, domain.FieldFooter,
		e.blocks.Footer(), e.blocks.FooterStart, l.cfg.Rules.FooterMaxLineLength)
}

// lineLengths yields one violation per line longer than limit. offset is the
// index of lines[0] within the whole message.
func lineLengths(id domain.RuleID, field string, lines []string, offset, limit int) []domain.Violation {
	var out []domain.Violation
	for i, line := range lines {
		n := utf8.RuneCountInString(line)
		if n <= limit {
			continue
		}
		out = append(out, domain.Violation{
			Rule:    id,
			Field:   field,
			Message: fmt.Sprintf("%s line %d must not be longer than %d characters, current length is %d", field, offset+i+1, limit, n),
			Line:    offset + i + 1,
		})
	}
	return out
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
