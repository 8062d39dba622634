package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound      = errors.New("not found")
	ErrInvariant     = errors.New("internal invariant violated")
	ErrNoCachedBuild = errors.New("no cached build, run build first")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvariantError wraps a failure that can only come from a bug in the build
// itself, such as looking up a vertex the linker should have inserted.
type InvariantError struct {
	Stage string
	Err   error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

// NodeNotFoundError is returned when an operator asks for an unknown UCI
type NodeNotFoundError struct {
	UCI string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node not found: %s", e.UCI)
}

func (e *NodeNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func invariant(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &InvariantError{Stage: stage, Err: err}
}
