package lakegate

import (
	"time"
)

// FileIdentity addresses a file inside a container. Name is opaque and may
// contain slashes.
type FileIdentity struct {
	Container Container
	Name      string
}

// FileEntry is a single path entry returned by a listing.
// ContentLength is meaningless for directories.
type FileEntry struct {
	Name          string    `json:"Name"`
	IsDirectory   bool      `json:"IsDirectory"`
	LastModified  time.Time `json:"LastModified"`
	ContentLength int64     `json:"ContentLength"`
}

// Listing is the full, unpaginated content of a container in backend order.
type Listing struct {
	Container Container   `json:"Container"`
	Files     []FileEntry `json:"Files"`
	Count     int         `json:"Count"`
	Timestamp time.Time   `json:"Timestamp"`
}

// UploadReceipt confirms a completed upload.
type UploadReceipt struct {
	Container Container `json:"Container"`
	Name      string    `json:"FileName"`
	Size      int64     `json:"-"`
	Timestamp time.Time `json:"Timestamp"`
}

// Download holds the decoded text content of a file.
type Download struct {
	Container Container `json:"Container"`
	Name      string    `json:"FileName"`
	Content   string    `json:"Content"`
	Timestamp time.Time `json:"Timestamp"`
}

// StorageStatus is the connectivity state reported by the probe.
type StorageStatus string

const (
	StorageNotConfigured StorageStatus = "Not Configured"
	StorageConnected     StorageStatus = "Connected"
	StorageDisconnected  StorageStatus = "Disconnected"
)

// OverallStatus is the top-level health state.
type OverallStatus string

const (
	StatusHealthy   OverallStatus = "Healthy"
	StatusUnhealthy OverallStatus = "Unhealthy"
)

// StorageHealth is the result of a connectivity probe.
type StorageHealth struct {
	Status         StorageStatus `json:"Status"`
	StorageAccount string        `json:"StorageAccount,omitempty"`
	Message        string        `json:"Message,omitempty"`
	Error          string        `json:"Error,omitempty"`
}

// HealthReport is the body of a successful health check.
type HealthReport struct {
	Status      OverallStatus `json:"Status"`
	Timestamp   time.Time     `json:"Timestamp"`
	Version     string        `json:"Version"`
	Environment string        `json:"Environment"`
	DataLake    StorageHealth `json:"DataLake"`
}
