// Package errors defines the sentinel errors shared across zeroenv.
// Callers distinguish failure kinds with errors.Is; messages here are the
// canonical descriptions, and call sites add context by wrapping with %w.
package errors
