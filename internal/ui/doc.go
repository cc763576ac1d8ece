// Package ui provides semantic text formatting for CLI output.
// Formatters carry both a colored and an uncolored rendering so output stays
// readable when piped or when NO_COLOR is set.
package ui
