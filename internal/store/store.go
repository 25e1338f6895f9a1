package store

import "errors"

// ErrNotFound is returned when a record's identity does not resolve.
var ErrNotFound = errors.New("not found")
