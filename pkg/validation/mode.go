package validation

import (
	"fmt"
	"strings"
)

// Mode selects the validator variant.
type Mode string

const (
	// ModeDevelopment emits diagnostics.
	ModeDevelopment Mode = "development"
	// ModeProduction turns validation into a no-op.
	ModeProduction Mode = "production"
)

// ParseMode accepts the long and short spellings of each mode.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "development", "dev":
		return ModeDevelopment, nil
	case "production", "prod":
		return ModeProduction, nil
	default:
		return "", fmt.Errorf("validation: unknown mode %q", raw)
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}
