package validation

import (
	"log/slog"
	"strings"
)

// Report writes each issue to logger at WARN level. A nil logger or an empty
// issue list is a no-op, so callers can report unconditionally.
func Report(logger *slog.Logger, kind string, issues []Issue) {
	if logger == nil || len(issues) == 0 {
		return
	}
	for _, issue := range issues {
		logger.Warn("content constraint violated",
			"kind", kind,
			"field", issue.Field,
			"rule", issue.Rule,
			"observed", issue.Observed,
			"allowed", strings.Join(issue.Allowed, ","),
			"message", issue.Message,
		)
	}
}
