package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-coda/pkg/constraint"
	"github.com/goliatone/go-coda/pkg/content"
)

// Validator checks a content model against a constraint set.
type Validator interface {
	Validate(model content.Model, set constraint.Set) []Issue
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(content.Model, constraint.Set) []Issue

// Validate calls the underlying function.
func (fn ValidatorFunc) Validate(model content.Model, set constraint.Set) []Issue {
	return fn(model, set)
}

// New returns the validator variant for mode. Unknown modes fall back to the
// no-op production validator.
func New(mode Mode) Validator {
	if mode == ModeDevelopment {
		return diagnosticValidator{}
	}
	return Noop()
}

// Noop returns a validator that never reports issues.
func Noop() Validator {
	return noopValidator{}
}

type noopValidator struct{}

func (noopValidator) Validate(content.Model, constraint.Set) []Issue {
	return nil
}

type diagnosticValidator struct{}

// Validate walks the constrained fields in sorted order. Per field the
// length bounds run first, then the enumeration, then the format check.
func (diagnosticValidator) Validate(model content.Model, set constraint.Set) []Issue {
	var issues []Issue
	for _, field := range set.Fields() {
		rule, _ := set.Rule(field)
		raw, present := model[field]
		if present && raw != nil {
			if _, ok := raw.(string); !ok {
				continue
			}
		}
		value, _ := raw.(string)
		issues = append(issues, checkLength(field, value, rule)...)
		if !present || raw == nil {
			continue
		}
		if issue, ok := checkEnum(field, value, rule); ok {
			issues = append(issues, issue)
		}
		if issue, ok := checkFormat(field, value, rule); ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

func checkLength(field, value string, rule constraint.Rule) []Issue {
	var issues []Issue
	length := utf8.RuneCountInString(value)
	if rule.MinLength != nil && length < *rule.MinLength {
		issues = append(issues, Issue{
			Field:    field,
			Rule:     constraint.RuleMinLength,
			Message:  fmt.Sprintf("length %d is below minimum %d", length, *rule.MinLength),
			Observed: strconv.Itoa(length),
			Allowed:  []string{strconv.Itoa(*rule.MinLength)},
		})
	}
	if rule.MaxLength != nil && length > *rule.MaxLength {
		issues = append(issues, Issue{
			Field:    field,
			Rule:     constraint.RuleMaxLength,
			Message:  fmt.Sprintf("length %d exceeds maximum %d", length, *rule.MaxLength),
			Observed: strconv.Itoa(length),
			Allowed:  []string{strconv.Itoa(*rule.MaxLength)},
		})
	}
	return issues
}

func checkEnum(field, value string, rule constraint.Rule) (Issue, bool) {
	if rule.Allows(value) {
		return Issue{}, false
	}
	allowed := append([]string(nil), rule.Enum...)
	return Issue{
		Field:    field,
		Rule:     constraint.RuleEnum,
		Message:  fmt.Sprintf("value %q is not one of [%s]", value, strings.Join(allowed, ", ")),
		Observed: value,
		Allowed:  allowed,
	}, true
}

var tokenRefPattern = regexp.MustCompile(`^\{[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*\}$`)

func checkFormat(field, value string, rule constraint.Rule) (Issue, bool) {
	if rule.Format == "" {
		return Issue{}, false
	}
	if matchesFormat(rule.Format, value) {
		return Issue{}, false
	}
	return Issue{
		Field:    field,
		Rule:     constraint.RuleFormat,
		Message:  fmt.Sprintf("value %q does not match format %q", value, rule.Format),
		Observed: value,
		Allowed:  []string{rule.Format},
	}, true
}

// matchesFormat reports unknown format tags as matching so a newer kind file
// does not flood older validators with diagnostics.
func matchesFormat(format, value string) bool {
	switch format {
	case constraint.FormatURL:
		parsed, err := url.ParseRequestURI(value)
		if err != nil {
			return false
		}
		return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
	case constraint.FormatEmail:
		addr, err := mail.ParseAddress(value)
		return err == nil && addr.Address == value
	case constraint.FormatTokenRef:
		return tokenRefPattern.MatchString(value)
	case constraint.FormatPlainText:
		return isPlainText(value)
	case constraint.FormatSafeSVG:
		return isSafeSVG(value)
	default:
		return true
	}
}
