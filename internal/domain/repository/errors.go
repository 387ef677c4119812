package repository

import "errors"

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when a users insert hits the unique
// email index.
var ErrDuplicateEmail = errors.New("email already registered")
