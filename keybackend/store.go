package keybackend

// KeysConfig holds configuration for loading function keys.
type KeysConfig struct {
	Inline []FunctionKey `mapstructure:"inline"` // Inline keys from config
	File   string        `mapstructure:"file"`   // Path to JSON file containing keys
}

// NewKeyStore creates a MapKeyStore from the given configuration.
// Inline keys and file keys are merged; file keys take precedence when the
// same value appears in both.
func NewKeyStore(cfg KeysConfig) (*MapKeyStore, error) {
	keys := make(map[string]string)

	for _, k := range cfg.Inline {
		if k.Value != "" {
			keys[k.Value] = keyName(k)
		}
	}

	if cfg.File != "" {
		fileKeys, err := LoadKeysFromFile(cfg.File)
		if err != nil {
			return nil, err
		}
		for v, n := range fileKeys {
			keys[v] = n
		}
	}

	return NewMapKeyStore(keys), nil
}
