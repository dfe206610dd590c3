package lakegate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// GatewayConfig holds configuration for Gateway.
type GatewayConfig struct {
	// Account is the storage account name. Empty means not configured and
	// every operation fails with ErrConfiguration.
	Account string
	Logger  *slog.Logger
	// Now overrides the clock used for response timestamps (default: time.Now).
	Now func() time.Time
}

// Gateway implements the upload, list and download operations over a
// StorageClientFactory. It holds no mutable state and is safe for concurrent
// use.
type Gateway struct {
	factory StorageClientFactory
	account string
	logger  *slog.Logger
	now     func() time.Time
}

func NewGateway(factory StorageClientFactory, cfg GatewayConfig) *Gateway {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Gateway{
		factory: factory,
		account: cfg.Account,
		logger:  logger,
		now:     now,
	}
}

// Upload reads the whole content stream as UTF-8 text and writes it to
// container/name, overwriting any existing file.
//
// The configuration and container checks run before any storage work; a
// request that fails them never reaches the factory.
func (g *Gateway) Upload(ctx context.Context, container, name string, content io.Reader) (UploadReceipt, error) {
	const op = "upload"
	g.logger.InfoContext(ctx, "upload request", "container", container, "file", name)

	c, err := g.prepare(op, container, name, true)
	if err != nil {
		return UploadReceipt{}, err
	}

	text, err := DecodeText(content)
	if err != nil {
		return UploadReceipt{}, g.fail(ctx, &OpError{Kind: ErrBackend, Op: op, Container: string(c), Name: name, Err: err})
	}
	data := []byte(text)

	client, err := g.client(ctx, op, c, name)
	if err != nil {
		return UploadReceipt{}, err
	}
	defer g.release(ctx, client)

	if err := client.Upload(ctx, c, name, data); err != nil {
		return UploadReceipt{}, g.fail(ctx, &OpError{Kind: ErrBackend, Op: op, Container: string(c), Name: name, Err: err})
	}

	g.logger.InfoContext(ctx, "uploaded file", "container", c, "file", name, "bytes", len(data))

	return UploadReceipt{
		Container: c,
		Name:      name,
		Size:      int64(len(data)),
		Timestamp: g.now().UTC(),
	}, nil
}

// List returns every path entry in the container. The full listing is
// materialized before returning; entries keep the backend's order.
func (g *Gateway) List(ctx context.Context, container string) (Listing, error) {
	const op = "list"
	g.logger.InfoContext(ctx, "list request", "container", container)

	c, err := g.prepare(op, container, "", false)
	if err != nil {
		return Listing{}, err
	}

	client, err := g.client(ctx, op, c, "")
	if err != nil {
		return Listing{}, err
	}
	defer g.release(ctx, client)

	files, err := client.List(ctx, c)
	if err != nil {
		return Listing{}, g.fail(ctx, &OpError{Kind: ErrBackend, Op: op, Container: string(c), Err: err})
	}
	if files == nil {
		files = []FileEntry{}
	}

	g.logger.InfoContext(ctx, "listed container", "container", c, "count", len(files))

	return Listing{
		Container: c,
		Files:     files,
		Count:     len(files),
		Timestamp: g.now().UTC(),
	}, nil
}

// Download checks that container/name exists and returns its content decoded
// as UTF-8 text. A missing file yields ErrNotFound without a read call.
func (g *Gateway) Download(ctx context.Context, container, name string) (Download, error) {
	const op = "download"
	g.logger.InfoContext(ctx, "download request", "container", container, "file", name)

	c, err := g.prepare(op, container, name, true)
	if err != nil {
		return Download{}, err
	}

	client, err := g.client(ctx, op, c, name)
	if err != nil {
		return Download{}, err
	}
	defer g.release(ctx, client)

	exists, err := client.Exists(ctx, c, name)
	if err != nil {
		return Download{}, g.fail(ctx, &OpError{Kind: ErrBackend, Op: op, Container: string(c), Name: name, Err: err})
	}
	if !exists {
		g.logger.InfoContext(ctx, "file not found", "container", c, "file", name)
		return Download{}, &OpError{Kind: ErrNotFound, Op: op, Container: string(c), Name: name}
	}

	rc, err := client.Read(ctx, c, name)
	if errors.Is(err, ErrNotFound) {
		return Download{}, &OpError{Kind: ErrNotFound, Op: op, Container: string(c), Name: name}
	}
	if err != nil {
		return Download{}, g.fail(ctx, &OpError{Kind: ErrBackend, Op: op, Container: string(c), Name: name, Err: err})
	}
	defer func() { _ = rc.Close() }()

	content, err := DecodeText(rc)
	if err != nil {
		return Download{}, g.fail(ctx, &OpError{Kind: ErrBackend, Op: op, Container: string(c), Name: name, Err: err})
	}

	g.logger.InfoContext(ctx, "downloaded file", "container", c, "file", name, "bytes", len(content))

	return Download{
		Container: c,
		Name:      name,
		Content:   content,
		Timestamp: g.now().UTC(),
	}, nil
}

// prepare runs the checks that must pass before any storage work:
// configured account, allowlisted container and, when required, a usable
// file name.
func (g *Gateway) prepare(op, container, name string, needName bool) (Container, error) {
	if g.account == "" {
		return "", &OpError{Kind: ErrConfiguration, Op: op, Container: container, Name: name}
	}

	c, err := ParseContainer(container)
	if err != nil {
		return "", &OpError{Kind: ErrInvalidContainer, Op: op, Container: container, Name: name}
	}

	if needName {
		if name == "" {
			return "", &OpError{Kind: ErrInvalidInput, Op: op, Container: string(c), Err: errors.New("file name is empty")}
		}
		if !IsValidFileName(name) {
			return "", &OpError{Kind: ErrInvalidInput, Op: op, Container: string(c), Name: name, Err: fmt.Errorf("invalid file name %q", name)}
		}
	}

	return c, nil
}

func (g *Gateway) client(ctx context.Context, op string, c Container, name string) (StorageClient, error) {
	client, err := g.factory.NewClient(ctx, g.account)
	if err != nil {
		return nil, g.fail(ctx, &OpError{Kind: ErrAuthentication, Op: op, Container: string(c), Name: name, Err: err})
	}
	return client, nil
}

func (g *Gateway) release(ctx context.Context, client StorageClient) {
	if err := client.Close(); err != nil {
		g.logger.WarnContext(ctx, "failed to close storage client", "account", client.Account(), "err", err)
	}
}

func (g *Gateway) fail(ctx context.Context, err *OpError) error {
	g.logger.ErrorContext(ctx, "operation failed",
		"op", err.Op,
		"container", err.Container,
		"file", err.Name,
		"err", err.Err,
	)
	return err
}
