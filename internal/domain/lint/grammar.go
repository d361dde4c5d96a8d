package lint

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/abdidvp/commitlint/internal/domain"
)

// ErrHeaderMalformed is returned when a header does not match the grammar.
var ErrHeaderMalformed = errors.New("header does not match the configured pattern")

// HeaderFields holds the values extracted from a header. Nil pointers mean
// the field was not captured.
type HeaderFields struct {
	Type     *string
	Scope    *string
	Subject  *string
	Breaking bool
}

// Grammar is a compiled header pattern with logical fields resolved to
// capture group indices. It is safe for concurrent use.
type Grammar struct {
	re          *regexp.Regexp
	typeIdx     int
	scopeIdx    int
	subjectIdx  int
	breakingIdx int
}

// CompileGrammar compiles pattern and resolves each logical field through
// correspondence. The pattern is anchored so it must span the whole header.
func CompileGrammar(pattern string, correspondence map[string]string) (*Grammar, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling parser.pattern: %w", err)
	}
	p := domain.ParserConfig{Pattern: pattern, Correspondence: correspondence}
	return &Grammar{
		re:          re,
		typeIdx:     re.SubexpIndex(p.GroupFor(domain.LogicalType)),
		scopeIdx:    re.SubexpIndex(p.GroupFor(domain.LogicalScope)),
		subjectIdx:  re.SubexpIndex(p.GroupFor(domain.LogicalSubject)),
		breakingIdx: re.SubexpIndex(p.GroupFor(domain.LogicalBreaking)),
	}, nil
}

// Parse extracts the header fields, or returns ErrHeaderMalformed.
func (g *Grammar) Parse(header string) (HeaderFields, error) {
	loc := g.re.FindStringSubmatchIndex(header)
	if loc == nil {
		return HeaderFields{}, ErrHeaderMalformed
	}
	breaking := group(header, loc, g.breakingIdx)
	return HeaderFields{
		Type:     group(header, loc, g.typeIdx),
		Scope:    group(header, loc, g.scopeIdx),
		Subject:  group(header, loc, g.subjectIdx),
		Breaking: breaking != nil && *breaking != "",
	}, nil
}

// group returns the text of capture group idx, or nil if the group does not
// exist or did not participate in the match.
func group(s string, loc []int, idx int) *string {
	if idx < 0 || 2*idx+1 >= len(loc) || loc[2*idx] < 0 {
		return nil
	}
	v := s[loc[2*idx]:loc[2*idx+1]]
	return &v
}
