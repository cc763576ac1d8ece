// Package utils holds small helpers with no zeroenv-specific state:
// terminal input and .gitignore maintenance.
package utils
