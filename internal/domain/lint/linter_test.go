package lint_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/abdidvp/commitlint/internal/domain"
	"github.com/abdidvp/commitlint/internal/domain/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLinter(t *testing.T, mutate func(*domain.Config)) *lint.Linter {
	t.Helper()
	cfg := domain.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	l, err := lint.New(cfg)
	require.NoError(t, err)
	return l
}

func TestLint_ValidConventionalCommit(t *testing.T) {
	result := newLinter(t, nil).Lint("feat: add new feature")
	assert.True(t, result.Valid)
	assert.Empty(t, result.Violations)
	require.NotNil(t, result.Commit)
	assert.True(t, result.Commit.Parsed)
	assert.Equal(t, "feat", *result.Commit.Type)
	assert.Nil(t, result.Commit.Scope)
	assert.Equal(t, "add new feature", *result.Commit.Subject)
	assert.False(t, result.Commit.Breaking)
}

func TestLint_InvalidType(t *testing.T) {
	l := newLinter(t, func(c *domain.Config) { c.Rules.Type.Enum = []string{"feat", "fix", "docs"} })
	result := l.Lint("invalid: bad commit type")
	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, domain.RuleTypeEnum, result.Violations[0].Rule)
	assert.Equal(t, domain.FieldType, result.Violations[0].Field)
	assert.Contains(t, result.Violations[0].Message, "[feat, fix, docs]")
}

func TestLint_MalformedHeaderSuppressesFieldRules(t *testing.T) {
	result := newLinter(t, nil).Lint("feat:Missing colon")
	assert.False(t, result.Valid)
	assert.Equal(t, []domain.RuleID{domain.RuleHeaderMalformed}, result.Rules())
	assert.False(t, result.Commit.Parsed)
	assert.Equal(t, "feat:Missing colon", result.Commit.Header)
	assert.Nil(t, result.Commit.Type)
	assert.Nil(t, result.Commit.Subject)
}

func TestLint_MalformedHeaderStillChecksLength(t *testing.T) {
	header := "this header does not follow the convention and is also far too long to pass"
	raw := header + "\nbody without blank line"
	result := newLinter(t, func(c *domain.Config) { c.Rules.BodyMaxLineLength = 5 }).Lint(raw)

	assert.Equal(t, []domain.RuleID{domain.RuleHeaderMalformed, domain.RuleHeaderMaxLength}, result.Rules())
}

func TestLint_LongHeaderReportedAlongsideOtherRules(t *testing.T) {
	header := "invalid: " + strings.Repeat("x", 71)
	require.Len(t, header, 80)

	result := newLinter(t, nil).Lint(header)
	assert.Equal(t, []domain.RuleID{domain.RuleTypeEnum, domain.RuleHeaderMaxLength}, result.Rules())
	assert.True(t, result.Commit.Parsed)
	assert.Equal(t, "invalid", *result.Commit.Type)
	assert.Contains(t, result.Violations[1].Message, "current length is 80")
}

func TestLint_BodyWithoutLeadingBlank(t *testing.T) {
	raw := "feat: x\nthis body paragraph follows the header directly"
	result := newLinter(t, func(c *domain.Config) { c.Rules.BodyMaxLineLength = 20 }).Lint(raw)

	assert.Equal(t, []domain.RuleID{domain.RuleBodyLeadingBlank, domain.RuleBodyMaxLineLength}, result.Rules())
	assert.Equal(t, 2, result.Violations[1].Line)
}

func TestLint_BodyMaxLineLengthOncePerLine(t *testing.T) {
	raw := "fix: handle nil\n\nshort\n" + strings.Repeat("a", 30) + "\n\n" + strings.Repeat("b", 31)
	result := newLinter(t, func(c *domain.Config) { c.Rules.BodyMaxLineLength = 25 }).Lint(raw)

	require.Len(t, result.Violations, 2)
	assert.Equal(t, domain.RuleBodyMaxLineLength, result.Violations[0].Rule)
	assert.Equal(t, 4, result.Violations[0].Line)
	assert.Equal(t, 6, result.Violations[1].Line)
}

func TestLint_FooterRules(t *testing.T) {
	raw := "fix: handle nil\n\nbody text\nRefs: " + strings.Repeat("1", 20)
	result := newLinter(t, func(c *domain.Config) { c.Rules.FooterMaxLineLength = 10 }).Lint(raw)

	assert.Equal(t, []domain.RuleID{domain.RuleFooterLeadingBlank, domain.RuleFooterMaxLineLength}, result.Rules())
	assert.Equal(t, 4, result.Violations[1].Line)
	assert.Equal(t, []string{"body text"}, result.Commit.Body)
	assert.Equal(t, []domain.Trailer{{Key: "Refs", Value: strings.Repeat("1", 20)}}, result.Commit.Trailers)
}

func TestLint_FullMessageValid(t *testing.T) {
	raw := "feat(api)!: drop legacy endpoints\n\nThe v1 endpoints are gone.\n\nBREAKING CHANGE: clients must use v2\nCloses: #42\n"
	result := newLinter(t, nil).Lint(raw)

	assert.True(t, result.Valid, "violations: %v", result.Violations)
	c := result.Commit
	assert.Equal(t, "api", *c.Scope)
	assert.True(t, c.Breaking)
	assert.Equal(t, []string{"The v1 endpoints are gone."}, c.Body)
	assert.Equal(t, []string{"BREAKING CHANGE: clients must use v2", "Closes: #42"}, c.Footer)
	assert.Len(t, c.Trailers, 2)
}

func TestLint_BreakingFromFooterOnly(t *testing.T) {
	result := newLinter(t, nil).Lint("feat: new api\n\nBREAKING CHANGE: old api removed")
	assert.True(t, result.Commit.Breaking)
}

func TestLint_IgnoredMessage(t *testing.T) {
	l := newLinter(t, func(c *domain.Config) { c.Ignores = []string{`^Merge branch`, `WIP`} })

	for _, raw := range []string{
		"Merge branch 'main' into dev",
		"NOT CONVENTIONAL AT ALL.\nsome body mentioning WIP",
	} {
		result := l.Lint(raw)
		assert.True(t, result.Valid, raw)
		assert.True(t, result.Ignored, raw)
		assert.Empty(t, result.Violations, raw)
		assert.Nil(t, result.Commit, raw)
	}
}

func TestLint_SubjectEmptyAndCaseBothFire(t *testing.T) {
	result := newLinter(t, nil).Lint("feat: ")
	assert.Equal(t, []domain.RuleID{domain.RuleSubjectCase, domain.RuleSubjectEmpty}, result.Rules())
}

func TestLint_SubjectEmptyAllowed(t *testing.T) {
	l := newLinter(t, func(c *domain.Config) {
		c.Rules.SubjectEmpty = true
		c.Rules.SubjectCase = nil
	})
	assert.True(t, l.Lint("feat: ").Valid)
}

func TestLint_SubjectFullStop(t *testing.T) {
	result := newLinter(t, nil).Lint("docs: update readme.")
	assert.Equal(t, []domain.RuleID{domain.RuleSubjectFullStop}, result.Rules())
	assert.Contains(t, result.Violations[0].Message, "'.'")
}

func TestLint_SubjectCase(t *testing.T) {
	l := newLinter(t, nil)
	assert.True(t, l.Lint("docs: Update readme").Valid)
	assert.True(t, l.Lint("docs: update readme").Valid)
	assert.Equal(t, []domain.RuleID{domain.RuleSubjectCase}, l.Lint("docs: Update Readme").Rules())
}

func TestLint_TypeAndScopeCase(t *testing.T) {
	l := newLinter(t, func(c *domain.Config) {
		c.Rules.Type.Enum = nil
		c.Rules.Scope.Case = "kebab-case"
	})
	result := l.Lint("Feat(API_Gateway): add route")
	assert.Equal(t, []domain.RuleID{domain.RuleTypeCase, domain.RuleScopeCase}, result.Rules())
}

func TestLint_ScopeEnum(t *testing.T) {
	l := newLinter(t, func(c *domain.Config) { c.Rules.Scope.Enum = []string{"api", "cli"} })
	assert.True(t, l.Lint("fix(cli): handle flags").Valid)
	assert.True(t, l.Lint("fix: no scope is fine").Valid)

	result := l.Lint("fix(web): handle flags")
	assert.Equal(t, []domain.RuleID{domain.RuleScopeEnum}, result.Rules())
	assert.Contains(t, result.Violations[0].Message, `"web"`)
}

func TestLint_MissingTypeIsTypeEnumViolation(t *testing.T) {
	l := newLinter(t, func(c *domain.Config) {
		c.Parser.Pattern = `^(?:(?P<type>\w+): )?(?P<subject>.+)$`
	})
	result := l.Lint("just a subject")
	assert.True(t, result.Commit.Parsed)
	assert.Nil(t, result.Commit.Type)
	assert.Equal(t, []domain.RuleID{domain.RuleTypeEnum}, result.Rules())
	assert.Contains(t, result.Violations[0].Message, "type may not be empty")
}

func TestLint_CorrespondenceRemapsGroups(t *testing.T) {
	l := newLinter(t, func(c *domain.Config) {
		c.Parser.Pattern = `^(?P<kind>\w+)(?P<bang>!)?: (?P<text>.+)$`
		c.Parser.Correspondence = map[string]string{"type": "kind", "subject": "text", "breaking": "bang"}
	})
	result := l.Lint("fix!: patch it")
	assert.True(t, result.Valid)
	assert.Equal(t, "fix", *result.Commit.Type)
	assert.Equal(t, "patch it", *result.Commit.Subject)
	assert.True(t, result.Commit.Breaking)
}

func TestLint_DisabledRulesNeverFire(t *testing.T) {
	cfg := domain.Config{Parser: domain.ParserConfig{Pattern: domain.DefaultPattern}}
	l, err := lint.New(cfg)
	require.NoError(t, err)

	raw := "WHATEVER(Some_Scope): Subject Ending With Stop." + strings.Repeat("!", 100) + "\nbody\n" + strings.Repeat("z", 300)
	result := l.Lint(raw)
	assert.True(t, result.Valid, "violations: %v", result.Violations)
}

func TestLint_HeaderMinLength(t *testing.T) {
	l := newLinter(t, func(c *domain.Config) { c.Rules.HeaderMinLength = 20 })
	result := l.Lint("fix: typo")
	assert.Equal(t, []domain.RuleID{domain.RuleHeaderMinLength}, result.Rules())
}

func TestLint_HeaderLengthCountsCharacters(t *testing.T) {
	l := newLinter(t, func(c *domain.Config) { c.Rules.HeaderMaxLength = 11 })
	assert.True(t, l.Lint("fix: ñandú").Valid)
	assert.False(t, l.Lint("fix: ñandúes").Valid)
}

func TestLint_CRLFMessages(t *testing.T) {
	result := newLinter(t, nil).Lint("fix: handle crlf\r\n\r\nBody line.\r\n")
	assert.True(t, result.Valid, "violations: %v", result.Violations)
	assert.Equal(t, "fix: handle crlf", result.Commit.Header)
	assert.Equal(t, "fix: handle crlf\r\n\r\nBody line.\r\n", result.Commit.Raw)
}

func TestLint_Idempotent(t *testing.T) {
	l := newLinter(t, nil)
	raw := "Bad: Header.\nbody"
	assert.Equal(t, l.Lint(raw), l.Lint(raw))
}

func TestLint_ConcurrentUse(t *testing.T) {
	l := newLinter(t, nil)
	want := l.Lint("feat(x): Add thing.")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, l.Lint("feat(x): Add thing."))
		}()
	}
	wg.Wait()
}

func TestLintFunc(t *testing.T) {
	result, err := lint.Lint("feat: add new feature", domain.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, result.Valid)

	bad := domain.DefaultConfig()
	bad.Parser.Pattern = "(["
	_, err = lint.Lint("feat: x", bad)
	assert.Error(t, err)
}

func TestNew_RejectsUnknownCase(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Rules.SubjectCase = []string{"loud"}
	_, err := lint.New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules.subject_case")
}

func TestRuleOrder(t *testing.T) {
	order := lint.RuleOrder()
	require.Len(t, order, 14)
	assert.Equal(t, domain.RuleHeaderMalformed, order[0])
	assert.Equal(t, domain.RuleTypeEnum, order[1])
	assert.Equal(t, domain.RuleHeaderMaxLength, order[8])
	assert.Equal(t, domain.RuleFooterMaxLineLength, order[13])
}
