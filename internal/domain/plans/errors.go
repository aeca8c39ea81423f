package plans

import "errors"

// ErrNotFound is returned when no plan exists for the requested ID.
var ErrNotFound = errors.New("business plan not found")
