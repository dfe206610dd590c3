package clientcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// FunctionKeyHeader carries the function key on every request.
	FunctionKeyHeader = "x-functions-key"
)

// Client performs operations against a lakegate server.
type Client struct {
	endpoint    string
	functionKey string
	httpClient  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	cfg = cfg.WithDefaults()

	c := &Client{
		endpoint:    strings.TrimSuffix(cfg.Endpoint, "/"),
		functionKey: cfg.FunctionKey,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Upload uploads file(s) into a container. Recursive uploads walk the local
// directory and keep relative paths under RemotePath.
func (c *Client) Upload(ctx context.Context, opts UploadOptions) ([]UploadResult, error) {
	if opts.Container == "" {
		return nil, fmt.Errorf("upload: %w", ErrContainerRequired)
	}
	if opts.LocalPath == "" {
		return nil, fmt.Errorf("upload: %w", ErrEmptyPath)
	}

	remote := opts.RemotePath
	if remote == "" {
		remote = NormalizeLocalToRemotePath(opts.LocalPath)
	}

	if opts.Recursive {
		return c.uploadRecursive(ctx, opts.Container, opts.LocalPath, remote)
	}

	result, err := c.uploadSingle(ctx, opts.Container, opts.LocalPath, remote)
	if err != nil {
		return nil, err
	}
	return []UploadResult{result}, nil
}

func (c *Client) uploadRecursive(ctx context.Context, container, localDir, remotePrefix string) ([]UploadResult, error) {
	info, err := os.Stat(localDir)
	if err != nil {
		return nil, fmt.Errorf("stat local path: %w", err)
	}
	if !info.IsDir() {
		result, uploadErr := c.uploadSingle(ctx, container, localDir, remotePrefix)
		if uploadErr != nil {
			return nil, uploadErr
		}
		return []UploadResult{result}, nil
	}

	var results []UploadResult
	remotePrefix = strings.Trim(remotePrefix, "/")

	walkErr := filepath.WalkDir(localDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(localDir, path)
		if err != nil {
			results = append(results, UploadResult{LocalPath: path, Container: container, Err: err})
			return nil
		}
		remote := filepath.ToSlash(rel)
		if remotePrefix != "" {
			remote = remotePrefix + "/" + remote
		}

		result, err := c.uploadSingle(ctx, container, path, remote)
		if err != nil {
			result = UploadResult{LocalPath: path, Container: container, RemotePath: remote, Err: err}
		}
		results = append(results, result)
		return nil
	})
	if walkErr != nil {
		return results, fmt.Errorf("walk directory: %w", walkErr)
	}

	return results, nil
}

func (c *Client) uploadSingle(ctx context.Context, container, localPath, remotePath string) (UploadResult, error) {
	file, err := os.Open(localPath) //#nosec G304 -- localPath is user-provided input
	if err != nil {
		return UploadResult{}, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return UploadResult{}, fmt.Errorf("stat file: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, filePath("upload", container, remotePath), file)
	if err != nil {
		return UploadResult{}, err
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", "application/octet-stream")

	var resp serverUpload
	if err := c.do(req, &resp); err != nil {
		return UploadResult{}, err
	}

	return UploadResult{
		LocalPath:  localPath,
		Container:  resp.Container,
		RemotePath: resp.FileName,
		Size:       info.Size(),
		Timestamp:  resp.Timestamp,
	}, nil
}

// Download fetches a file's text content. Unless LocalPath is "-", the
// content is also written to LocalPath (default: base name of the remote path).
func (c *Client) Download(ctx context.Context, opts DownloadOptions) (*DownloadResult, error) {
	if opts.Container == "" {
		return nil, fmt.Errorf("download: %w", ErrContainerRequired)
	}
	if opts.RemotePath == "" {
		return nil, fmt.Errorf("download: %w", ErrEmptyPath)
	}

	req, err := c.newRequest(ctx, http.MethodGet, filePath("download", opts.Container, opts.RemotePath), http.NoBody)
	if err != nil {
		return nil, err
	}

	var resp serverDownload
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	result := &DownloadResult{
		Container:  resp.Container,
		RemotePath: resp.FileName,
		LocalPath:  opts.LocalPath,
		Size:       int64(len(resp.Content)),
		Timestamp:  resp.Timestamp,
		Content:    resp.Content,
	}
	if result.LocalPath == "-" {
		return result, nil
	}
	if result.LocalPath == "" {
		result.LocalPath = filepath.Base(filepath.FromSlash(opts.RemotePath))
	}

	if dir := filepath.Dir(result.LocalPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(result.LocalPath, []byte(resp.Content), 0o644); err != nil { //#nosec G306 -- downloaded user data
		return nil, fmt.Errorf("write file: %w", err)
	}

	return result, nil
}

// List returns every entry of a container.
func (c *Client) List(ctx context.Context, container string) (*ListResult, error) {
	if container == "" {
		return nil, fmt.Errorf("list: %w", ErrContainerRequired)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/datalake/list/"+url.PathEscape(container), http.NoBody)
	if err != nil {
		return nil, err
	}

	var resp serverListing
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	files := make([]FileInfo, len(resp.Files))
	for i, f := range resp.Files {
		files[i] = FileInfo{
			Name:          f.Name,
			IsDirectory:   f.IsDirectory,
			LastModified:  f.LastModified,
			ContentLength: f.ContentLength,
		}
	}

	return &ListResult{
		Container: resp.Container,
		Files:     files,
		Count:     resp.Count,
		Timestamp: resp.Timestamp,
	}, nil
}

// Health fetches the health report. An Unhealthy server (503) is returned as
// a result, not an error.
func (c *Client) Health(ctx context.Context) (*HealthResult, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return nil, parseServerError(resp.StatusCode, body)
	}

	var h serverHealth
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	result := &HealthResult{
		Status:      h.Status,
		Timestamp:   h.Timestamp,
		Version:     h.Version,
		Environment: h.Environment,
		Error:       h.Error,
	}
	if h.DataLake != nil {
		result.DataLake = &StorageHealth{
			Status:         h.DataLake.Status,
			StorageAccount: h.DataLake.StorageAccount,
			Message:        h.DataLake.Message,
			Error:          h.DataLake.Error,
		}
	}
	return result, nil
}

// Status fetches the service description.
func (c *Client) Status(ctx context.Context) (*StatusResult, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/status", http.NoBody)
	if err != nil {
		return nil, err
	}

	var s serverStatus
	if err := c.do(req, &s); err != nil {
		return nil, err
	}

	return &StatusResult{
		Status:      s.Status,
		Service:     s.Service,
		Version:     s.Version,
		Environment: s.Environment,
		Timestamp:   s.Timestamp,
		Endpoints:   s.Endpoints,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.functionKey != "" {
		req.Header.Set(FunctionKeyHeader, c.functionKey)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do executes req and decodes a 200 response into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseServerError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// filePath builds /datalake/{op}/{container}/{name}, escaping each segment of
// name while keeping its slashes.
func filePath(op, container, name string) string {
	segments := strings.Split(strings.TrimPrefix(name, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/datalake/" + op + "/" + url.PathEscape(container) + "/" + strings.Join(segments, "/")
}

// NormalizeLocalToRemotePath converts a local path to a clean remote name.
// It handles:
//   - Leading "./" and "/" are stripped
//   - Parent traversal is dropped (../sibling/file.txt -> sibling/file.txt)
//   - Backslashes are converted to forward slashes (Windows)
func NormalizeLocalToRemotePath(localPath string) string {
	path := filepath.ToSlash(filepath.Clean(filepath.ToSlash(localPath)))
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")

	for strings.HasPrefix(path, "../") {
		path = strings.TrimPrefix(path, "../")
	}
	if path == ".." || path == "." {
		return ""
	}
	return path
}

func parseServerError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode, Body: string(body)}
	var se serverError
	if json.Unmarshal(body, &se) == nil {
		apiErr.Message = se.Error
	}
	return apiErr
}

// APIError represents an error response from the server. Message is the
// server's Error field when the body is JSON.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.TrimSpace(e.Body)
	}
	return "server error: " + strconv.Itoa(e.StatusCode) + " - " + msg
}

// Is reports whether target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrBadRequest is returned for configuration, container and name errors (400).
	ErrBadRequest = &APIError{StatusCode: http.StatusBadRequest}

	// ErrUnauthorized is returned when the function key is missing or wrong (401).
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}

	// ErrNotFound is returned when the requested file does not exist (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrTooLarge is returned when the upload exceeds the server limit (413).
	ErrTooLarge = &APIError{StatusCode: http.StatusRequestEntityTooLarge}
)
