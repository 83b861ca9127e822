package validation

import (
	"fmt"
	"strings"
)

// Issue describes a single constraint violation.
type Issue struct {
	Field    string   `json:"field"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	Observed string   `json:"observed,omitempty"`
	Allowed  []string `json:"allowed,omitempty"`
}

// String implements fmt.Stringer.
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Fields returns the distinct field names referenced by issues, in order of
// first appearance.
func Fields(issues []Issue) []string {
	if len(issues) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(issues))
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		if _, ok := seen[issue.Field]; ok {
			continue
		}
		seen[issue.Field] = struct{}{}
		out = append(out, issue.Field)
	}
	return out
}

// Messages flattens issues into "field: message" strings.
func Messages(issues []Issue) []string {
	if len(issues) == 0 {
		return nil
	}
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, strings.TrimSpace(issue.String()))
	}
	return out
}
