package lint

import (
	"fmt"
	"regexp"
)

// IgnoreMatcher exempts messages matching any configured pattern from linting.
type IgnoreMatcher struct {
	patterns []*regexp.Regexp
}

// NewIgnoreMatcher compiles the ignore patterns in order.
func NewIgnoreMatcher(patterns []string) (*IgnoreMatcher, error) {
	m := &IgnoreMatcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling ignores[%d]: %w", i, err)
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// IsIgnored reports whether any pattern occurs anywhere in the raw message.
func (m *IgnoreMatcher) IsIgnored(raw string) bool {
	for _, re := range m.patterns {
		if re.MatchString(raw) {
			return true
		}
	}
	return false
}
