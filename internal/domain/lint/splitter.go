package lint

import (
	"regexp"
	"strings"

	"github.com/abdidvp/commitlint/internal/domain"
)

var (
	footerTokenRe    = regexp.MustCompile(`^[\w-]+: `)
	breakingChangeRe = regexp.MustCompile(`(?i)^BREAKING[ -]CHANGE:`)
)

// Blocks partitions the physical lines of a message. Every line belongs to
// exactly one segment, in order: header, gap, body, gap, footer, trailing.
// Body and footer are half-open line ranges; an empty range means absent.
type Blocks struct {
	Lines       []string
	BodyStart   int
	BodyEnd     int
	FooterStart int
	FooterEnd   int
}

// Header returns the first physical line.
func (b Blocks) Header() string { return b.Lines[0] }

// HasBody reports whether the message has a body block.
func (b Blocks) HasBody() bool { return b.BodyEnd > b.BodyStart }

// HasFooter reports whether the message has a footer block.
func (b Blocks) HasFooter() bool { return b.FooterEnd > b.FooterStart }

// Body returns the body lines, blank lines between paragraphs kept as "".
func (b Blocks) Body() []string {
	if !b.HasBody() {
		return nil
	}
	return b.Lines[b.BodyStart:b.BodyEnd]
}

// Footer returns the footer lines.
func (b Blocks) Footer() []string {
	if !b.HasFooter() {
		return nil
	}
	return b.Lines[b.FooterStart:b.FooterEnd]
}

// BodyLeadingBlank reports whether a blank line separates header and body.
// True when there is no body.
func (b Blocks) BodyLeadingBlank() bool {
	if !b.HasBody() {
		return true
	}
	return b.BodyStart >= 2 && isBlank(b.Lines[b.BodyStart-1])
}

// FooterLeadingBlank reports whether a blank line separates the footer from
// whatever precedes it. True when there is no footer.
func (b Blocks) FooterLeadingBlank() bool {
	if !b.HasFooter() {
		return true
	}
	return b.FooterStart >= 2 && isBlank(b.Lines[b.FooterStart-1])
}

// Join reassembles the message. Split(raw).Join() == raw for every raw.
func (b Blocks) Join() string {
	return strings.Join(b.Lines, "\n")
}

// paragraph is a maximal run [start, end) of non-blank lines.
type paragraph struct{ start, end int }

// Split partitions raw into header, body and footer blocks. The first line
// is the header regardless of content. The footer is the tail of the last
// paragraph starting at its first footer-token line; everything else after
// the header is body.
func Split(raw string) Blocks {
	lines := strings.Split(raw, "\n")
	b := Blocks{Lines: lines}

	var paras []paragraph
	for i := 1; i < len(lines); i++ {
		if isBlank(lines[i]) {
			continue
		}
		start := i
		for i < len(lines) && !isBlank(lines[i]) {
			i++
		}
		paras = append(paras, paragraph{start, i})
	}
	if len(paras) == 0 {
		return b
	}

	last := paras[len(paras)-1]
	bodyEnd := last.end
	for i := last.start; i < last.end; i++ {
		if IsFooterToken(lines[i]) {
			b.FooterStart, b.FooterEnd = i, last.end
			bodyEnd = i
			break
		}
	}

	if bodyEnd == last.start && len(paras) > 1 {
		// The footer fills the whole last paragraph; the body ends with
		// the paragraph before it.
		bodyEnd = paras[len(paras)-2].end
	}
	if bodyEnd > paras[0].start {
		b.BodyStart, b.BodyEnd = paras[0].start, bodyEnd
	}
	return b
}

// IsFooterToken reports whether line opens a footer entry: a word/hyphen
// token followed by ": ", or BREAKING CHANGE:.
func IsFooterToken(line string) bool {
	return footerTokenRe.MatchString(line) || breakingChangeRe.MatchString(line)
}

// IsBreakingChange reports whether line is a breaking-change footer.
func IsBreakingChange(line string) bool {
	return breakingChangeRe.MatchString(line)
}

// ParseTrailers reads "Key: value" entries from footer lines. Lines that do
// not open an entry are continuations of the previous value.
func ParseTrailers(footer []string) []domain.Trailer {
	var out []domain.Trailer
	for _, line := range footer {
		if loc := breakingChangeRe.FindStringIndex(line); loc != nil {
			out = append(out, domain.Trailer{
				Key:   strings.TrimSuffix(line[:loc[1]], ":"),
				Value: strings.TrimSpace(line[loc[1]:]),
			})
			continue
		}
		if footerTokenRe.MatchString(line) {
			key, value, _ := strings.Cut(line, ": ")
			out = append(out, domain.Trailer{Key: key, Value: strings.TrimSpace(value)})
			continue
		}
		if len(out) > 0 && !isBlank(line) {
			prev := &out[len(out)-1]
			prev.Value = strings.TrimSpace(prev.Value + "\n" + line)
		}
	}
	return out
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
