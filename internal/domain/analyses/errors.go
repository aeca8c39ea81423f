package analyses

import "errors"

var (
	// ErrJobNotFound is returned when no job exists for the requested ID.
	ErrJobNotFound = errors.New("analysis job not found")

	// ErrResultNotFound is returned when no result matches the request.
	ErrResultNotFound = errors.New("analysis result not found")

	// ErrNoAnalysis is returned when a plan has no completed analysis yet.
	ErrNoAnalysis = errors.New("no analysis available for plan")
)
