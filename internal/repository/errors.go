// Package repository contains data access logic separated from HTTP
// handlers.  Staff accounts and refresh tokens are read from the
// authentication database; entity records come from the content store
// through the query cache.  Sentinel values defined here let handlers
// distinguish failure scenarios without inspecting error strings.
package repository

import "errors"

// ErrNotFound is returned when a requested entity document does not
// exist in the content store.  Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when creating a staff account with an
// email that is already registered.  Handlers translate this into
// HTTP 409.
var ErrEmailExists = errors.New("email already exists")
