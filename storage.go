package lakegate

import (
	"context"
	"io"
)

// StorageClientFactory builds authenticated storage clients for an account.
//
// Implementations may share immutable resources such as a credential or a
// connection pool between the clients they return, but each returned client
// belongs to a single logical operation and is closed by the caller.
//
// NewClient must not retry. A failure to construct the client is reported
// as-is; the gateway classifies it as ErrAuthentication.
type StorageClientFactory interface {
	NewClient(ctx context.Context, account string) (StorageClient, error)
}

// StorageClient is an authenticated handle to one storage account.
//
// All methods accept a context for cancellation. Implementations should pass
// it to every network call so an aborted request stops its storage work.
type StorageClient interface {
	// Account returns the account the client is bound to.
	Account() string

	// Upload writes content to container/name, replacing any existing file.
	// No conditional or optimistic-concurrency checks are performed.
	Upload(ctx context.Context, container Container, name string, content []byte) error

	// List returns every path entry under the container root, recursively,
	// in the order the backend enumerates them. It returns an empty slice,
	// not nil, for an empty container.
	List(ctx context.Context, container Container) ([]FileEntry, error)

	// Exists reports whether container/name exists.
	Exists(ctx context.Context, container Container, name string) (bool, error)

	// Read opens container/name for reading. The caller closes the reader.
	Read(ctx context.Context, container Container, name string) (io.ReadCloser, error)

	// Ping performs one cheap metadata-only round trip against the account.
	Ping(ctx context.Context) error

	// Close releases resources held by this client only.
	Close() error
}
