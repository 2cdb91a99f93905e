package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// VisitCounter counts how many times each name has been greeted.
type VisitCounter interface {
	// Increment records a visit for name and returns the new total.
	Increment(ctx context.Context, name string) (int64, error)

	// Count returns the total for name, zero when it has never visited.
	Count(ctx context.Context, name string) (int64, error)
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
