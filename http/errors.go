package http

import "errors"

// ErrUnauthorized is returned when a request carries no valid function key.
var ErrUnauthorized = errors.New("unauthorized")
