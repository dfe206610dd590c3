// Package gcs provides a Google Cloud Storage backend for lakegate.
//
// The account is a Google Cloud project ID and each container maps to the
// bucket "{project}-{container}". Credentials come from Application Default
// Credentials.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/sagarc03/lakegate"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Config configures the GCS factory.
type Config struct {
	// Endpoint overrides the JSON API endpoint, e.g. for an emulator.
	// Requests to a custom endpoint are sent without authentication.
	Endpoint string
}

// Factory shares one storage.Client across every account.
type Factory struct {
	cfg Config

	once      sync.Once
	client    *storage.Client
	clientErr error
}

var _ lakegate.StorageClientFactory = (*Factory)(nil)

func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg}
}

// BucketName returns the bucket backing container in project.
func BucketName(project string, container lakegate.Container) string {
	return project + "-" + string(container)
}

// NewClient returns a client scoped to project. The underlying GCS client is
// created on first use.
func (f *Factory) NewClient(ctx context.Context, project string) (lakegate.StorageClient, error) {
	if project == "" || strings.ContainsAny(project, "/ ") {
		return nil, fmt.Errorf("invalid project id %q", project)
	}

	f.once.Do(func() {
		var opts []option.ClientOption
		if f.cfg.Endpoint != "" {
			opts = append(opts, option.WithEndpoint(f.cfg.Endpoint), option.WithoutAuthentication())
		}
		// The client outlives this request, so it must not inherit its ctx.
		client, err := storage.NewClient(context.WithoutCancel(ctx), opts...)
		if err != nil {
			f.clientErr = fmt.Errorf("failed to create GCS client: %w", err)
			return
		}
		f.client = client
	})
	if f.clientErr != nil {
		return nil, f.clientErr
	}

	return &Client{project: project, gcs: f.client}, nil
}

// Close closes the shared GCS client.
func (f *Factory) Close() error {
	if f.client == nil {
		return nil
	}
	return f.client.Close()
}

// Client performs object operations for one project.
type Client struct {
	project string
	gcs     *storage.Client
}

var _ lakegate.StorageClient = (*Client)(nil)

func (c *Client) Account() string {
	return c.project
}

func (c *Client) object(container lakegate.Container, name string) *storage.ObjectHandle {
	return c.gcs.Bucket(BucketName(c.project, container)).Object(name)
}

// Upload replaces the object with content.
func (c *Client) Upload(ctx context.Context, container lakegate.Container, name string, content []byte) error {
	w := c.object(container, name).NewWriter(ctx)
	w.ContentType = "text/plain; charset=utf-8"

	if _, err := w.Write(content); err != nil {
		// Closing aborts the upload; the write error is the one to report.
		_ = w.Close()
		return fmt.Errorf("failed to write to GCS: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}

	return nil
}

// List returns every object in the bucket. Objects whose names end in "/"
// are folder placeholders and are reported as directories.
func (c *Client) List(ctx context.Context, container lakegate.Container) ([]lakegate.FileEntry, error) {
	entries := []lakegate.FileEntry{}

	it := c.gcs.Bucket(BucketName(c.project, container)).Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		entries = append(entries, fileEntry(attrs))
	}

	return entries, nil
}

func (c *Client) Exists(ctx context.Context, container lakegate.Container, name string) (bool, error) {
	_, err := c.object(container, name).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return true, nil
}

func (c *Client) Read(ctx context.Context, container lakegate.Container, name string) (io.ReadCloser, error) {
	r, err := c.object(container, name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("read %s/%s: %w", container, name, lakegate.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read from GCS: %w", err)
	}
	return r, nil
}

// Ping fetches the project's GCS service account, a metadata-only call.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.gcs.ServiceAccount(ctx, c.project); err != nil {
		return fmt.Errorf("failed to get project service account: %w", err)
	}
	return nil
}

// Close is a no-op; the shared client is closed by Factory.Close.
func (c *Client) Close() error {
	return nil
}

func fileEntry(attrs *storage.ObjectAttrs) lakegate.FileEntry {
	if strings.HasSuffix(attrs.Name, "/") {
		return lakegate.FileEntry{
			Name:         strings.TrimSuffix(attrs.Name, "/"),
			IsDirectory:  true,
			LastModified: attrs.Updated.UTC(),
		}
	}
	return lakegate.FileEntry{
		Name:          attrs.Name,
		LastModified:  attrs.Updated.UTC(),
		ContentLength: attrs.Size,
	}
}
