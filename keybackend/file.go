package keybackend

import (
	"encoding/json"
	"fmt"
	"os"
)

// FunctionKey is a named shared key that callers present to invoke the
// gateway's functions.
type FunctionKey struct {
	Name  string `json:"name" mapstructure:"name"`
	Value string `json:"value" mapstructure:"value"`
}

// LoadKeysFromFile loads function keys from a JSON file.
// The file should contain an array of keys:
//
//	[
//	  {"name": "default", "value": "q1w2e3..."},
//	  {"name": "ingest-job", "value": "z9x8c7..."}
//	]
//
// Returns a map of key value to key name.
func LoadKeysFromFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config file
	if err != nil {
		return nil, fmt.Errorf("read keys file: %w", err)
	}

	var fk []FunctionKey
	if err := json.Unmarshal(data, &fk); err != nil {
		return nil, fmt.Errorf("parse keys file: %w", err)
	}

	keys := make(map[string]string, len(fk))
	for _, k := range fk {
		if k.Value != "" {
			keys[k.Value] = keyName(k)
		}
	}

	return keys, nil
}

func keyName(k FunctionKey) string {
	if k.Name == "" {
		return "default"
	}
	return k.Name
}
