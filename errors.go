package lakegate

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when no storage account is configured
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidContainer is returned when a container is not in the allowlist
	ErrInvalidContainer = errors.New("invalid container")
	// ErrInvalidInput is returned when request input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a file does not exist
	ErrNotFound = errors.New("not found")
	// ErrAuthentication is returned when a storage client cannot be built
	ErrAuthentication = errors.New("authentication error")
	// ErrBackend is returned when the storage service call fails
	ErrBackend = errors.New("backend error")
	// ErrHealthCheck is returned when the health check itself fails
	ErrHealthCheck = errors.New("health check error")
)

// OpError describes a failed gateway operation.
//
// Kind is one of the sentinel errors above and Err is the underlying cause,
// if any. Both are reachable through errors.Is and errors.As.
type OpError struct {
	Kind      error
	Op        string
	Container string
	Name      string
	Err       error
}

func (e *OpError) Error() string {
	target := e.Container
	if e.Name != "" {
		target += "/" + e.Name
	}
	cause := e.Kind.Error()
	if e.Err != nil {
		cause = fmt.Sprintf("%s: %s", cause, e.Err)
	}
	if target == "" {
		return fmt.Sprintf("%s: %s", e.Op, cause)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, target, cause)
}

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Message returns the text shown to callers. Backend and authentication
// failures pass the storage service message through unchanged.
func (e *OpError) Message() string {
	switch {
	case errors.Is(e.Kind, ErrConfiguration):
		return "Storage account configuration not found."
	case errors.Is(e.Kind, ErrInvalidContainer):
		return "Invalid container name. Valid containers: " + validContainerList
	case errors.Is(e.Kind, ErrInvalidInput):
		if e.Name != "" {
			return "Invalid file name: " + e.Name
		}
		return "File name is required."
	case errors.Is(e.Kind, ErrNotFound):
		return fmt.Sprintf("File %s not found in container %s", e.Name, e.Container)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Error()
}
