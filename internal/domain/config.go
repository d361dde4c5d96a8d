package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/abdidvp/commitlint/internal/domain/casing"
	"github.com/go-playground/validator/v10"
)

// DefaultPattern is the conventional-commit header grammar:
// type(scope)!: subject
const DefaultPattern = `^(?P<type>\w+)(?:\((?P<scope>[^)]+)\))?(?P<breaking>!)?:\s(?P<subject>.*)$`

// Logical header fields that the parser correspondence can remap.
const (
	LogicalType     = "type"
	LogicalScope    = "scope"
	LogicalSubject  = "subject"
	LogicalBreaking = "breaking"
)

// LogicalFields enumerates the header fields extracted by the grammar.
var LogicalFields = []string{LogicalType, LogicalScope, LogicalSubject, LogicalBreaking}

// DefaultTypes are the conventional commit types allowed out of the box.
var DefaultTypes = []string{
	"build", "chore", "ci", "docs", "feat", "fix",
	"perf", "refactor", "revert", "style", "test",
}

// Config is a commitlint configuration. It is treated as immutable once
// validated; the lint engine never changes it.
type Config struct {
	Parser  ParserConfig `toml:"parser"  yaml:"parser"  json:"parser"`
	Ignores []string     `toml:"ignores" yaml:"ignores" json:"ignores"`
	Rules   Rules        `toml:"rules"   yaml:"rules"   json:"rules"`
}

// ParserConfig holds the header grammar. Correspondence maps a logical
// field name to the capture group that holds it; unmapped fields use their
// own name.
type ParserConfig struct {
	Pattern        string            `toml:"pattern"        yaml:"pattern"        json:"pattern"        validate:"required"`
	Correspondence map[string]string `toml:"correspondence" yaml:"correspondence" json:"correspondence"`
}

// Rules configures every rule. Empty enums, empty case names and zero
// length bounds disable the corresponding rule.
type Rules struct {
	Type                CaseEnumRule `toml:"type"                   yaml:"type"                   json:"type"`
	Scope               CaseEnumRule `toml:"scope"                  yaml:"scope"                  json:"scope"`
	SubjectCase         []string     `toml:"subject_case"           yaml:"subject_case"           json:"subject_case"           validate:"dive,case_family"`
	SubjectEmpty        bool         `toml:"subject_empty"          yaml:"subject_empty"          json:"subject_empty"`
	SubjectFullStop     string       `toml:"subject_full_stop"      yaml:"subject_full_stop"      json:"subject_full_stop"      validate:"max=1"`
	HeaderMaxLength     int          `toml:"header_max_length"      yaml:"header_max_length"      json:"header_max_length"      validate:"gte=0"`
	HeaderMinLength     int          `toml:"header_min_length"      yaml:"header_min_length"      json:"header_min_length"      validate:"gte=0"`
	BodyLeadingBlank    bool         `toml:"body_leading_blank"     yaml:"body_leading_blank"     json:"body_leading_blank"`
	BodyMaxLineLength   int          `toml:"body_max_line_length"   yaml:"body_max_line_length"   json:"body_max_line_length"   validate:"gte=0"`
	FooterLeadingBlank  bool         `toml:"footer_leading_blank"   yaml:"footer_leading_blank"   json:"footer_leading_blank"`
	FooterMaxLineLength int          `toml:"footer_max_line_length" yaml:"footer_max_line_length" json:"footer_max_line_length" validate:"gte=0"`
}

// CaseEnumRule restricts a header field to a set of values and a case.
type CaseEnumRule struct {
	Enum []string `toml:"enum" yaml:"enum" json:"enum"`
	Case string   `toml:"case" yaml:"case" json:"case" validate:"omitempty,case_family"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	return Config{
		Parser: ParserConfig{
			Pattern: DefaultPattern,
			Correspondence: map[string]string{
				LogicalType:     LogicalType,
				LogicalScope:    LogicalScope,
				LogicalSubject:  LogicalSubject,
				LogicalBreaking: LogicalBreaking,
			},
		},
		Ignores: []string{},
		Rules: Rules{
			Type:                CaseEnumRule{Enum: append([]string(nil), DefaultTypes...), Case: "lowercase"},
			Scope:               CaseEnumRule{Enum: []string{}, Case: "lowercase"},
			SubjectCase:         []string{"sentence-case", "lowercase"},
			SubjectEmpty:        false,
			SubjectFullStop:     ".",
			HeaderMaxLength:     72,
			HeaderMinLength:     0,
			BodyLeadingBlank:    true,
			BodyMaxLineLength:   100,
			FooterLeadingBlank:  true,
			FooterMaxLineLength: 100,
		},
	}
}

// GroupFor returns the capture-group name that holds a logical field.
func (p ParserConfig) GroupFor(field string) string {
	if g, ok := p.Correspondence[field]; ok && g != "" {
		return g
	}
	return field
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("case_family", func(fl validator.FieldLevel) bool {
		return isValidCaseName(fl.Field().String())
	})
	return v
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	// 1. field-level constraints
	if err := newValidator().Struct(c); err != nil {
		return describeValidation(err)
	}

	// 2. header grammar must compile
	re, err := regexp.Compile(c.Parser.Pattern)
	if err != nil {
		return fmt.Errorf("parser.pattern does not compile: %w", err)
	}

	// 3. correspondence keys must be logical fields, remapped groups must exist
	groups := make(map[string]bool)
	for _, name := range re.SubexpNames() {
		if name != "" {
			groups[name] = true
		}
	}
	for field, group := range c.Parser.Correspondence {
		if !isLogicalField(field) {
			return fmt.Errorf("unknown field %q in parser.correspondence (valid: %s)", field, strings.Join(LogicalFields, ", "))
		}
		if group != field && !groups[group] {
			return fmt.Errorf("parser.correspondence maps %q to group %q, which parser.pattern does not define", field, group)
		}
	}

	// 4. ignore patterns must compile
	for i, p := range c.Ignores {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("ignores[%d] does not compile: %w", i, err)
		}
	}

	// 5. header bounds must be consistent
	r := c.Rules
	if r.HeaderMinLength > 0 && r.HeaderMaxLength > 0 && r.HeaderMinLength > r.HeaderMaxLength {
		return fmt.Errorf("rules.header_min_length (%d) exceeds rules.header_max_length (%d)", r.HeaderMinLength, r.HeaderMaxLength)
	}

	return nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "case_family":
		return fmt.Errorf("unknown case %q in %s (valid: %s)", fe.Value(), field, strings.Join(casing.Names(), ", "))
	case "max":
		return fmt.Errorf("%s must be at most %s character (got %q)", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Errorf("%s must be >= %s (got %v)", field, fe.Param(), fe.Value())
	case "required":
		return fmt.Errorf("%s must not be empty", field)
	default:
		return fmt.Errorf("%s failed %q validation", field, fe.Tag())
	}
}

func isValidCaseName(name string) bool {
	_, err := casing.Parse(name)
	return err == nil
}

func isLogicalField(name string) bool {
	for _, f := range LogicalFields {
		if f == name {
			return true
		}
	}
	return false
}
