// Package server runs the HTTP server and the background workers of the
// service, and shuts both down gracefully on SIGINT, SIGTERM or SIGQUIT.
package server
