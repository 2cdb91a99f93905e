// Package config loads the service configuration.
//
// Three sources are merged with mergo, each overriding the non-zero fields
// of the one before: environment variables, command-line flags, then the
// JSON file named by -c/-config or CONFIG. Whatever is still unset gets the
// package defaults, and the result is validated before
// [GetStructuredConfig] returns it.
//
// The database and redis features are switched on by setting their URL.
package config
