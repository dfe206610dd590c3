package clientcli

import "errors"

// Errors for profile operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProfiles      = errors.New("no profiles configured")
)

// Errors for input validation.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrContainerRequired = errors.New("container is required")
	ErrEmptyPath         = errors.New("path is required")
)
