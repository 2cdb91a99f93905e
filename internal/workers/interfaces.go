// Package workers runs the background jobs of the service next to the HTTP
// server.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled or the job
// fails, and returns nil on a clean stop.
type Worker interface {
	Run(ctx context.Context) error
}
