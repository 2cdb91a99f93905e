// Package service holds the business logic behind the HTTP routes: the
// application identity reported by /endpoints/info and the greeting routes.
package service
