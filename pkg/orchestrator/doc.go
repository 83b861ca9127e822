// Package orchestrator wires the catalog → registry scope → decorators →
// component render → output renderer pipeline behind a single entry point.
package orchestrator
