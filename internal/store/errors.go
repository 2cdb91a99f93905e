package store

import "errors"

var (
	// ErrConnecting is returned when a backend could not be reached within
	// its connection timeout.
	ErrConnecting = errors.New("error connecting to storage")

	// ErrEmptyName is returned when a visit is recorded for an empty name.
	ErrEmptyName = errors.New("empty visitor name")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level or cache-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrRollingBackTransaction is returned when rolling back a transaction
	// fails.
	ErrRollingBackTransaction = errors.New("failed to roll back transaction")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrExecutingCommand is returned when a Redis command fails.
	ErrExecutingCommand = errors.New("error executing redis command")
)
