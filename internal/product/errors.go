package product

import "errors"

var (
	// ErrStorage wraps every failure reported by the database: connection
	// loss, constraint violations, aborted transactions.
	ErrStorage = errors.New("storage failure")

	ErrProductNotFound = errors.New("product not found")
	ErrInvalidInput    = errors.New("invalid input")
)
