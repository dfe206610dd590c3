package keybackend_test

import (
	"testing"

	"github.com/sagarc03/lakegate/keybackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapKeyStore_Lookup(t *testing.T) {
	tests := []struct {
		name     string
		keys     map[string]string
		value    string
		wantName string
		wantErr  error
	}{
		{
			name: "returns key name when value exists",
			keys: map[string]string{
				"value1": "default",
				"value2": "ingest-job",
			},
			value:    "value2",
			wantName: "ingest-job",
		},
		{
			name:    "returns ErrKeyNotFound when value does not exist",
			keys:    map[string]string{"value1": "default"},
			value:   "nonexistent",
			wantErr: keybackend.ErrKeyNotFound,
		},
		{
			name:    "prefix of a key does not match",
			keys:    map[string]string{"value1": "default"},
			value:   "value",
			wantErr: keybackend.ErrKeyNotFound,
		},
		{
			name:    "empty value never matches",
			keys:    map[string]string{"value1": "default"},
			value:   "",
			wantErr: keybackend.ErrKeyNotFound,
		},
		{
			name:    "returns ErrKeyNotFound for nil store",
			keys:    nil,
			value:   "anykey",
			wantErr: keybackend.ErrKeyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := keybackend.NewMapKeyStore(tt.keys)
			gotName, err := store.Lookup(tt.value)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, gotName)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantName, gotName)
			}
		})
	}
}

func TestMapKeyStore_Len(t *testing.T) {
	assert.Equal(t, 0, keybackend.NewMapKeyStore(nil).Len())
	assert.Equal(t, 2, keybackend.NewMapKeyStore(map[string]string{"a": "x", "b": "y"}).Len())
}
