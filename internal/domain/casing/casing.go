// Package casing classifies strings into the lexical case families used by
// the type-case, scope-case and subject-case rules.
package casing

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

// Family is a recognized case convention.
type Family string

const (
	Lower    Family = "lowercase"
	Upper    Family = "uppercase"
	Camel    Family = "camel-case"
	Kebab    Family = "kebab-case"
	Pascal   Family = "pascal-case"
	Snake    Family = "snake-case"
	Sentence Family = "sentence-case"
	Start    Family = "start-case"
)

// Families lists every recognized family in declaration order.
var Families = []Family{Lower, Upper, Camel, Kebab, Pascal, Snake, Sentence, Start}

// Names returns the family names, for validation messages and validator tags.
func Names() []string {
	names := make([]string, len(Families))
	for i, f := range Families {
		names[i] = string(f)
	}
	return names
}

// Parse converts a configured name into a Family.
func Parse(name string) (Family, error) {
	for _, f := range Families {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown case %q (valid: %s)", name, strings.Join(Names(), ", "))
}

// ParseAll converts a list of names, failing on the first unknown one.
func ParseAll(names []string) ([]Family, error) {
	out := make([]Family, 0, len(names))
	for _, n := range names {
		f, err := Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Matches reports whether s is written in the given family.
// The empty string matches no family.
func Matches(s string, f Family) bool {
	if s == "" {
		return false
	}
	switch f {
	case Lower:
		return !hasRune(s, unicode.IsUpper)
	case Upper:
		return !hasRune(s, unicode.IsLower)
	case Kebab:
		return separated(s, '-')
	case Snake:
		return separated(s, '_')
	case Camel:
		return joinedWords(s, unicode.IsLower)
	case Pascal:
		return joinedWords(s, unicode.IsUpper)
	case Sentence:
		return isSentence(s)
	case Start:
		return isStart(s)
	}
	return false
}

// MatchesAny reports whether s satisfies at least one of the families.
func MatchesAny(s string, families []Family) bool {
	for _, f := range families {
		if Matches(s, f) {
			return true
		}
	}
	return false
}

func hasRune(s string, pred func(rune) bool) bool {
	return strings.IndexFunc(s, pred) >= 0
}

// separated checks lowercase alphanumeric words joined by single sep runes.
func separated(s string, sep rune) bool {
	for _, word := range strings.Split(s, string(sep)) {
		if word == "" {
			return false
		}
		for _, r := range word {
			if !unicode.IsLower(r) && !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}

// joinedWords checks separator-free identifiers whose first rune satisfies
// first and whose later words all start uppercase.
func joinedWords(s string, first func(rune) bool) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	if !first([]rune(s)[0]) {
		return false
	}
	for _, word := range camelcase.Split(s)[1:] {
		lead := []rune(word)[0]
		if unicode.IsLetter(lead) && !unicode.IsUpper(lead) {
			return false
		}
	}
	return true
}

func isSentence(s string) bool {
	seenFirst := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if !seenFirst {
			if !unicode.IsUpper(r) {
				return false
			}
			seenFirst = true
			continue
		}
		if unicode.IsUpper(r) {
			return false
		}
	}
	return seenFirst
}

func isStart(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		i := strings.IndexFunc(w, unicode.IsLetter)
		if i < 0 {
			continue
		}
		if r := []rune(w[i:])[0]; !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
