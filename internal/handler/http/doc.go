// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware. Every request
// passes through B3 trace extraction, access logging with metrics, the
// configured [RequestHandler] hooks and panic recovery before it is
// delegated to the service layer. Errors are written as JSON through
// package apperr.
package http
