package domain

// RuleID names a lint rule. The values are stable and appear in output.
type RuleID string

const (
	RuleHeaderMalformed     RuleID = "header-malformed"
	RuleTypeEnum            RuleID = "type-enum"
	RuleTypeCase            RuleID = "type-case"
	RuleScopeEnum           RuleID = "scope-enum"
	RuleScopeCase           RuleID = "scope-case"
	RuleSubjectCase         RuleID = "subject-case"
	RuleSubjectEmpty        RuleID = "subject-empty"
	RuleSubjectFullStop     RuleID = "subject-full-stop"
	RuleHeaderMaxLength     RuleID = "header-max-length"
	RuleHeaderMinLength     RuleID = "header-min-length"
	RuleBodyLeadingBlank    RuleID = "body-leading-blank"
	RuleBodyMaxLineLength   RuleID = "body-max-line-length"
	RuleFooterLeadingBlank  RuleID = "footer-leading-blank"
	RuleFooterMaxLineLength RuleID = "footer-max-line-length"
)

// Message fields a violation can point at.
const (
	FieldHeader  = "header"
	FieldType    = "type"
	FieldScope   = "scope"
	FieldSubject = "subject"
	FieldBody    = "body"
	FieldFooter  = "footer"
)

// Violation is a single rule failure. Line is the 1-based line of the raw
// message for per-line rules and zero otherwise.
type Violation struct {
	Rule    RuleID `json:"rule"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// LintResult is the outcome of linting one commit message.
type LintResult struct {
	Valid      bool           `json:"valid"`
	Ignored    bool           `json:"ignored,omitempty"`
	Violations []Violation    `json:"violations"`
	Commit     *CommitMessage `json:"commit,omitempty"`
}

// HasRule reports whether any violation was produced by rule.
func (r LintResult) HasRule(rule RuleID) bool {
	for _, v := range r.Violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// Rules returns the rule id of every violation, in order.
func (r LintResult) Rules() []RuleID {
	ids := make([]RuleID, 0, len(r.Violations))
	for _, v := range r.Violations {
		ids = append(ids, v.Rule)
	}
	return ids
}

// CommitMessage is the structured form of a raw commit message.
// Type, Scope and Subject are nil when the header grammar did not match or
// the corresponding group did not take part in the match.
type CommitMessage struct {
	Raw      string    `json:"raw"`
	Header   string    `json:"header"`
	Type     *string   `json:"type,omitempty"`
	Scope    *string   `json:"scope,omitempty"`
	Subject  *string   `json:"subject,omitempty"`
	Breaking bool      `json:"breaking"`
	Body     []string  `json:"body,omitempty"`
	Footer   []string  `json:"footer,omitempty"`
	Trailers []Trailer `json:"trailers,omitempty"`
	Parsed   bool      `json:"parsed"`
}

// Trailer is one "Key: value" footer entry.
type Trailer struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CommitReport ties a lint result to the commit it was produced for.
type CommitReport struct {
	Hash   string     `json:"hash"`
	Result LintResult `json:"result"`
}

// CommitRef is a commit hash with its full message.
type CommitRef struct {
	Hash    string `json:"hash"`
	Message string `json:"message"`
}
