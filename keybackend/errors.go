package keybackend

import "errors"

// ErrKeyNotFound is returned when a presented function key matches no
// configured key.
var ErrKeyNotFound = errors.New("function key not found")
