package clientcli

import "time"

// UploadOptions configures an upload operation.
type UploadOptions struct {
	Container  string
	LocalPath  string
	RemotePath string // empty = derive from local path
	Recursive  bool
}

// UploadResult represents the result of uploading a single file.
type UploadResult struct {
	LocalPath  string    `json:"local_path"`
	Container  string    `json:"container"`
	RemotePath string    `json:"remote_path"`
	Size       int64     `json:"size_bytes"`
	Timestamp  time.Time `json:"timestamp"`
	Err        error     `json:"-"` // nil on success
}

// DownloadOptions configures a download operation.
type DownloadOptions struct {
	Container  string
	RemotePath string
	LocalPath  string // empty = derive from remote, "-" = content returned only
}

// DownloadResult represents the result of downloading a file. Content holds
// the decoded text as returned by the server.
type DownloadResult struct {
	Container  string    `json:"container"`
	RemotePath string    `json:"remote_path"`
	LocalPath  string    `json:"local_path"`
	Size       int64     `json:"size_bytes"`
	Timestamp  time.Time `json:"timestamp"`
	Content    string    `json:"-"`
}

// ListResult holds every entry of a container.
type ListResult struct {
	Container string     `json:"container"`
	Files     []FileInfo `json:"files"`
	Count     int        `json:"count"`
	Timestamp time.Time  `json:"timestamp"`
}

// FileInfo represents a single listed path.
type FileInfo struct {
	Name          string    `json:"name"`
	IsDirectory   bool      `json:"is_directory"`
	LastModified  time.Time `json:"last_modified"`
	ContentLength int64     `json:"content_length"`
}

// TotalSize sums the content length of every file, skipping directories.
func (r *ListResult) TotalSize() int64 {
	var total int64
	for _, f := range r.Files {
		if !f.IsDirectory {
			total += f.ContentLength
		}
	}
	return total
}

// HealthResult is the server health report. Error is set only when the
// server reports Unhealthy.
type HealthResult struct {
	Status      string         `json:"status"`
	Timestamp   time.Time      `json:"timestamp"`
	Version     string         `json:"version,omitempty"`
	Environment string         `json:"environment,omitempty"`
	DataLake    *StorageHealth `json:"data_lake,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// Healthy reports whether the server returned a Healthy status.
func (h *HealthResult) Healthy() bool {
	return h.Status == "Healthy"
}

// StorageHealth is the storage connectivity part of a health report.
type StorageHealth struct {
	Status         string `json:"status"`
	StorageAccount string `json:"storage_account,omitempty"`
	Message        string `json:"message,omitempty"`
	Error          string `json:"error,omitempty"`
}

// StatusResult describes the running service.
type StatusResult struct {
	Status      string    `json:"status"`
	Service     string    `json:"service"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	Timestamp   time.Time `json:"timestamp"`
	Endpoints   []string  `json:"endpoints"`
}

// The server encodes its responses with PascalCase keys.

type serverUpload struct {
	Message   string    `json:"Message"`
	Container string    `json:"Container"`
	FileName  string    `json:"FileName"`
	Timestamp time.Time `json:"Timestamp"`
}

type serverDownload struct {
	Container string    `json:"Container"`
	FileName  string    `json:"FileName"`
	Content   string    `json:"Content"`
	Timestamp time.Time `json:"Timestamp"`
}

type serverFile struct {
	Name          string    `json:"Name"`
	IsDirectory   bool      `json:"IsDirectory"`
	LastModified  time.Time `json:"LastModified"`
	ContentLength int64     `json:"ContentLength"`
}

type serverListing struct {
	Container string       `json:"Container"`
	Files     []serverFile `json:"Files"`
	Count     int          `json:"Count"`
	Timestamp time.Time    `json:"Timestamp"`
}

type serverStorageHealth struct {
	Status         string `json:"Status"`
	StorageAccount string `json:"StorageAccount"`
	Message        string `json:"Message"`
	Error          string `json:"Error"`
}

type serverHealth struct {
	Status      string               `json:"Status"`
	Timestamp   time.Time            `json:"Timestamp"`
	Version     string               `json:"Version"`
	Environment string               `json:"Environment"`
	DataLake    *serverStorageHealth `json:"DataLake"`
	Error       string               `json:"Error"`
}

type serverStatus struct {
	Status      string    `json:"Status"`
	Service     string    `json:"Service"`
	Version     string    `json:"Version"`
	Environment string    `json:"Environment"`
	Timestamp   time.Time `json:"Timestamp"`
	Endpoints   []string  `json:"Endpoints"`
}

type serverError struct {
	Error string `json:"Error"`
}
