// Package store contains the optional storage backends of the service and
// the visit counters built on top of them.
//
// PostgreSQL is reached through database/sql with the pgx driver and Redis
// through go-redis. Both are enabled by configuring their URL; when neither
// is configured visits are counted in memory.
package store
