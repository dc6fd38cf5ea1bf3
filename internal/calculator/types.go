package calculator

import "architect-calculators/internal/calc"

// Options configures the calculator HTTP handlers.
type Options struct {
	// MaxBodyBytes caps the request body; larger bodies get 413.
	MaxBodyBytes int64
	// StrictStatus answers validation failures with 422 instead of 200.
	// The body is {"error": msg} either way.
	StrictStatus bool
}

// ListResponse is the JSON response for GET /api/calculators.
type ListResponse struct {
	Calculators []calc.Schema `json:"calculators"`
}
