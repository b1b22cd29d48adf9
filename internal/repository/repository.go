package repository

import "errors"

// ErrNotFound is returned when an update or delete touches no rows.
var ErrNotFound = errors.New("record not found")
