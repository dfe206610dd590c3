// Package filesystem provides a local file system storage backend for
// lakegate. Each account is a directory under the root and each container a
// directory under the account. Writes are atomic using temp files.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sagarc03/lakegate"
)

const tmpDir = ".lakegate-tmp"

// Client provides file operations for one account directory.
type Client struct {
	account string
	root    *os.Root
}

var _ lakegate.StorageClient = (*Client)(nil)

// Account returns the account directory name.
func (c *Client) Account() string {
	return c.account
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

type ctxReadCloser struct {
	ctxReader
	c io.Closer
}

func (r *ctxReadCloser) Close() error {
	return r.c.Close()
}

// Upload atomically writes content to container/name using a temp file and
// rename, replacing any existing file. Intermediate directories are created
// as needed.
func (c *Client) Upload(ctx context.Context, container lakegate.Container, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dest, err := objectPath(container, name)
	if err != nil {
		return err
	}

	if err := c.root.MkdirAll(tmpDir, 0o755); err != nil {
		return fmt.Errorf("could not create temp directory: %w", err)
	}

	tmpFile := tmpFileName()
	t, err := c.root.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("could not open temp file: %w", err)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := c.root.Remove(tmpFile); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	if _, err := t.Write(content); err != nil {
		return fmt.Errorf("could not write file contents: %w", err)
	}

	if err := t.Sync(); err != nil {
		return fmt.Errorf("could not sync written file: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := c.root.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("could not create intermediate directories: %w", err)
	}

	if err := c.root.Rename(tmpFile, dest); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}

	success = true
	return nil
}

// List recursively walks the container directory and returns every file and
// directory in lexical walk order. A container directory that does not exist
// yet lists as empty.
func (c *Client) List(ctx context.Context, container lakegate.Container) ([]lakegate.FileEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := []lakegate.FileEntry{}

	err := c.walkDir(ctx, string(container), "", &entries)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []lakegate.FileEntry{}, nil
		}
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return entries, nil
}

func (c *Client) walkDir(ctx context.Context, base, rel string, entries *[]lakegate.FileEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dirEntries, err := fs.ReadDir(c.root.FS(), path.Join(base, rel))
	if err != nil {
		return err
	}

	for _, entry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return err
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("walk dir: %w", err)
		}

		entryName := path.Join(rel, entry.Name())
		fe := lakegate.FileEntry{
			Name:         entryName,
			IsDirectory:  entry.IsDir(),
			LastModified: info.ModTime().UTC(),
		}
		if !entry.IsDir() {
			fe.ContentLength = info.Size()
		}
		*entries = append(*entries, fe)

		if entry.IsDir() {
			if err := c.walkDir(ctx, base, entryName, entries); err != nil {
				return err
			}
		}
	}

	return nil
}

// Exists reports whether container/name exists. Directories exist too.
func (c *Client) Exists(ctx context.Context, container lakegate.Container, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p, err := objectPath(container, name)
	if err != nil {
		return false, err
	}

	info, err := c.root.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("could not stat file: %w", err)
	}

	return info.Mode().IsRegular() || info.IsDir(), nil
}

// Read opens container/name for reading. Reads stop once ctx is done.
func (c *Client) Read(ctx context.Context, container lakegate.Container, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := objectPath(container, name)
	if err != nil {
		return nil, err
	}

	f, err := c.root.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", p, lakegate.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("could not stat file: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s is a directory", name)
	}

	return &ctxReadCloser{ctxReader: ctxReader{ctx: ctx, r: f}, c: f}, nil
}

// Ping stats the account directory.
func (c *Client) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.root.Stat("."); err != nil {
		return fmt.Errorf("stat account %s: %w", c.account, err)
	}
	return nil
}

// Close releases the account directory handle.
func (c *Client) Close() error {
	return c.root.Close()
}

// objectPath maps a file name, which always uses forward slashes, to a local
// path under the container directory.
func objectPath(container lakegate.Container, name string) (string, error) {
	clean := path.Clean(name)
	if name == "" || clean != name || !fs.ValidPath(clean) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(string(container), filepath.FromSlash(clean)), nil
}

func tmpFileName() string {
	return path.Join(tmpDir, fmt.Sprintf(".t%s", uuid.New().String()))
}
