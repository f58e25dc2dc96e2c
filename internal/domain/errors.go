package domain

import "errors"

// Allocation outcomes other than success. Callers match them with errors.Is.
// ErrInfeasible is an expected result, not a fault: the catalog simply cannot seat everyone.
var (
	ErrInvalidInput         = errors.New("passenger count must be positive")
	ErrInfeasible           = errors.New("fleet cannot seat all passengers")
	ErrArithmeticOverflow   = errors.New("seat count overflows int")
	ErrSearchBudgetExceeded = errors.New("search budget exceeded")
	ErrInvalidCatalog       = errors.New("invalid vehicle catalog")
	// ErrCatalogNotFound means the configured catalog source holds no catalog at all.
	ErrCatalogNotFound      = errors.New("vehicle catalog not found")
)
