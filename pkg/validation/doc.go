// Package validation checks component content against its constraint set and
// reports violations as structured Issues. Violations are diagnostics: they
// never block an update or a render. The validator variant is selected by an
// explicit Mode at construction; production mode validates nothing.
package validation
