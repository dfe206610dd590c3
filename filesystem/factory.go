package filesystem

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sagarc03/lakegate"
)

// Factory opens account directories under a shared root.
type Factory struct {
	root *os.Root
}

var _ lakegate.StorageClientFactory = (*Factory)(nil)

// NewFactory creates a Factory over root. The root provides sandboxed file
// operations preventing path traversal.
func NewFactory(root *os.Root) *Factory {
	return &Factory{root: root}
}

// Open creates dir if needed and returns a Factory rooted at it.
func Open(dir string) (*Factory, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open storage directory: %w", err)
	}
	return NewFactory(root), nil
}

// NewClient opens the account directory, creating it on first use.
func (f *Factory) NewClient(ctx context.Context, account string) (lakegate.StorageClient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if account == "" || account == "." || account == ".." || strings.ContainsAny(account, `/\`) {
		return nil, fmt.Errorf("invalid account name %q", account)
	}

	if err := f.root.MkdirAll(account, 0o755); err != nil {
		return nil, fmt.Errorf("create account directory: %w", err)
	}

	root, err := f.root.OpenRoot(account)
	if err != nil {
		return nil, fmt.Errorf("open account directory: %w", err)
	}

	return &Client{account: account, root: root}, nil
}

// Close releases the shared root.
func (f *Factory) Close() error {
	return f.root.Close()
}
