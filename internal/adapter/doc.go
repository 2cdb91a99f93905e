// Package adapter holds clients for calling other services.
//
// [TracedClient] wraps a resty client so that every outbound request carries
// the B3 headers of the next span of the caller's trace, plus any default
// headers configured on the client.
package adapter
