package graph

import (
	"errors"
	"fmt"
)

// ErrVertexNotFound is returned by accessors given a label that was never added.
var ErrVertexNotFound = errors.New("vertex not found")

// VertexNotFoundError carries the label that failed to resolve
type VertexNotFoundError struct {
	Label string
}

func (e *VertexNotFoundError) Error() string {
	return fmt.Sprintf("vertex not found: %s", e.Label)
}

func (e *VertexNotFoundError) Is(target error) bool {
	return target == ErrVertexNotFound
}
