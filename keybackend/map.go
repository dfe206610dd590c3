// Package keybackend provides function key stores for request authorization.
package keybackend

import (
	"crypto/subtle"
	"fmt"
)

// MapKeyStore holds function keys in memory, keyed by value.
type MapKeyStore struct {
	keys map[string]string
}

// NewMapKeyStore creates a store from a key value to key name mapping.
func NewMapKeyStore(keys map[string]string) *MapKeyStore {
	if keys == nil {
		keys = map[string]string{}
	}
	return &MapKeyStore{keys: keys}
}

// Lookup returns the name of the key matching value. Every configured key is
// compared in constant time.
func (s *MapKeyStore) Lookup(value string) (string, error) {
	var name string
	found := 0
	for k, n := range s.keys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(value)) == 1 {
			name = n
			found = 1
		}
	}
	if found == 0 || value == "" {
		return "", fmt.Errorf("lookup: %w", ErrKeyNotFound)
	}
	return name, nil
}

// Len returns the number of configured keys.
func (s *MapKeyStore) Len() int {
	return len(s.keys)
}
