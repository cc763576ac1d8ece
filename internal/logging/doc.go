// Package logger provides leveled, color-coded output for the CLI.
// Info and debug lines go to stdout and are gated by the verbose and debug
// flags; warnings and errors always go to stderr. Secret values and key
// material must never be passed to any of these methods.
package logger
