// Package utils provides general-purpose helper utilities used across
// different parts of the application, such as writing JSON responses and
// reading bearer tokens.
package utils
