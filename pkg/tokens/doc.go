// Package tokens resolves design tokens: path-like keys ("color.brand.primary")
// mapped to string values. Stores load from JSON or YAML token files, expand
// "{path}" references, and can be derived from a go-theme selection so the
// Themed component decorator can emit CSS custom properties.
package tokens
