package lakegate

import (
	"fmt"
	"strings"
)

// Container is a top-level zone of the data lake.
type Container string

const (
	ContainerRaw       Container = "raw"
	ContainerProcessed Container = "processed"
	ContainerCurated   Container = "curated"
)

// Containers lists the allowlisted containers in tier order.
var Containers = []Container{ContainerRaw, ContainerProcessed, ContainerCurated}

const validContainerList = "raw, processed, curated"

// IsValidContainer reports whether name matches an allowlisted container,
// ignoring case.
func IsValidContainer(name string) bool {
	_, ok := lookupContainer(name)
	return ok
}

// ParseContainer returns the canonical lowercase container for name.
func ParseContainer(name string) (Container, error) {
	c, ok := lookupContainer(name)
	if !ok {
		return "", fmt.Errorf("parse container %q: %w", name, ErrInvalidContainer)
	}
	return c, nil
}

func lookupContainer(name string) (Container, bool) {
	lower := strings.ToLower(name)
	for _, c := range Containers {
		if lower == string(c) {
			return c, true
		}
	}
	return "", false
}

func (c Container) String() string {
	return string(c)
}
