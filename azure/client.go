package azure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake/file"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake/service"
	"github.com/sagarc03/lakegate"
)

// Client performs file system operations against one storage account.
// Containers map to Data Lake file systems.
type Client struct {
	account string
	svc     *service.Client
}

var _ lakegate.StorageClient = (*Client)(nil)

func (c *Client) Account() string {
	return c.account
}

func (c *Client) file(container lakegate.Container, name string) *file.Client {
	return c.svc.NewFileSystemClient(string(container)).NewFileClient(name)
}

// Upload creates or truncates the file, appends content and flushes it.
func (c *Client) Upload(ctx context.Context, container lakegate.Container, name string, content []byte) error {
	fc := c.file(container, name)

	if _, err := fc.Create(ctx, nil); err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if len(content) == 0 {
		return nil
	}

	if _, err := fc.AppendData(ctx, 0, streaming.NopCloser(bytes.NewReader(content)), nil); err != nil {
		return fmt.Errorf("append data: %w", err)
	}

	if _, err := fc.FlushData(ctx, int64(len(content)), nil); err != nil {
		return fmt.Errorf("flush data: %w", err)
	}

	return nil
}

// List pages through every path in the file system recursively.
func (c *Client) List(ctx context.Context, container lakegate.Container) ([]lakegate.FileEntry, error) {
	pager := c.svc.NewFileSystemClient(string(container)).NewListPathsPager(true, nil)

	entries := []lakegate.FileEntry{}
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list paths: %w", err)
		}
		for _, p := range page.Paths {
			if p == nil {
				continue
			}
			entries = append(entries, fileEntry(p.Name, p.IsDirectory, p.LastModified, p.ContentLength))
		}
	}

	return entries, nil
}

// Exists reports whether the path exists. Directories exist too.
func (c *Client) Exists(ctx context.Context, container lakegate.Container, name string) (bool, error) {
	_, err := c.file(container, name).GetProperties(ctx, nil)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get properties: %w", err)
	}
	return true, nil
}

func (c *Client) Read(ctx context.Context, container lakegate.Container, name string) (io.ReadCloser, error) {
	resp, err := c.file(container, name).DownloadStream(ctx, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("download %s/%s: %w", container, name, lakegate.ErrNotFound)
		}
		return nil, fmt.Errorf("download: %w", err)
	}
	return resp.Body, nil
}

// Ping reads the account's service properties.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.svc.GetProperties(ctx, nil); err != nil {
		return fmt.Errorf("get service properties: %w", err)
	}
	return nil
}

// Close is a no-op; service clients hold no per-client resources.
func (c *Client) Close() error {
	return nil
}

func fileEntry(name *string, isDir *bool, modified *time.Time, length *int64) lakegate.FileEntry {
	var e lakegate.FileEntry
	if name != nil {
		e.Name = *name
	}
	if isDir != nil {
		e.IsDirectory = *isDir
	}
	if modified != nil {
		e.LastModified = modified.UTC()
	}
	if length != nil && !e.IsDirectory {
		e.ContentLength = *length
	}
	return e
}

func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}
