package users

import "errors"

// ErrNotFound is returned when no profile exists for the requested subject.
var ErrNotFound = errors.New("user not found")
