package metrics

import (
	"context"
	"io"
	"time"

	"github.com/sagarc03/lakegate"
)

// InstrumentFactory wraps factory so every client it builds reports its calls
// to obs. Client construction is observed as op "connect".
func InstrumentFactory(factory lakegate.StorageClientFactory, obs StorageObserver) lakegate.StorageClientFactory {
	return &factoryObserver{next: factory, obs: obs}
}

type factoryObserver struct {
	next lakegate.StorageClientFactory
	obs  StorageObserver
}

func (f *factoryObserver) NewClient(ctx context.Context, account string) (lakegate.StorageClient, error) {
	start := time.Now()
	client, err := f.next.NewClient(ctx, account)
	f.obs.Observe("connect", 0, err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return &clientObserver{next: client, obs: f.obs}, nil
}

type clientObserver struct {
	next lakegate.StorageClient
	obs  StorageObserver
}

func (c *clientObserver) Account() string {
	return c.next.Account()
}

func (c *clientObserver) Upload(ctx context.Context, container lakegate.Container, name string, content []byte) error {
	start := time.Now()
	err := c.next.Upload(ctx, container, name, content)
	c.obs.Observe("upload", int64(len(content)), err, time.Since(start))
	return err
}

func (c *clientObserver) List(ctx context.Context, container lakegate.Container) ([]lakegate.FileEntry, error) {
	start := time.Now()
	entries, err := c.next.List(ctx, container)
	c.obs.Observe("list", 0, err, time.Since(start))
	return entries, err
}

func (c *clientObserver) Exists(ctx context.Context, container lakegate.Container, name string) (bool, error) {
	start := time.Now()
	ok, err := c.next.Exists(ctx, container, name)
	c.obs.Observe("exists", 0, err, time.Since(start))
	return ok, err
}

// Read observes the time to open the stream, not to drain it.
func (c *clientObserver) Read(ctx context.Context, container lakegate.Container, name string) (io.ReadCloser, error) {
	start := time.Now()
	rc, err := c.next.Read(ctx, container, name)
	c.obs.Observe("read", 0, err, time.Since(start))
	return rc, err
}

func (c *clientObserver) Ping(ctx context.Context) error {
	start := time.Now()
	err := c.next.Ping(ctx)
	c.obs.Observe("ping", 0, err, time.Since(start))
	return err
}

func (c *clientObserver) Close() error {
	return c.next.Close()
}
