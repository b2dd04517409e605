// Package repository contains data access logic separated from HTTP handlers.
// The sentinel values below are shared across repositories so handlers can
// distinguish failure scenarios with errors.Is and translate them into the
// API's response envelope.
package repository

import "errors"

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert would violate a uniqueness rule,
// such as a second user with the same email or a movie with an already-taken
// title.
var ErrDuplicate = errors.New("already exists")

// ErrConflict is returned when a delete cannot proceed because dependent
// records still reference the target, e.g. removing an actor who is still
// cast in a movie.
var ErrConflict = errors.New("conflict")
