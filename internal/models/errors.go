package models

import "errors"

// Sentinel errors services return so handlers can map them to status codes
// with errors.Is instead of matching message strings.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrInvalid      = errors.New("invalid input")
)
