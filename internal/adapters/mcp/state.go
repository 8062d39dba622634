package mcp

import (
	"context"
	"errors"
	"sync"

	"concepdag/internal/application"
)

// ErrNoBuild is returned by tools that need a build before one has completed
var ErrNoBuild = errors.New("no build available, run the rebuild tool")

// BuildFunc produces a fresh build of the project
type BuildFunc func(ctx context.Context) (*application.BuildResult, error)

// State holds the last completed build shared by every tool handler
type State struct {
	mu     sync.RWMutex
	result *application.BuildResult

	// buildMu serializes builds; they share the output directory
	buildMu sync.Mutex
	build   BuildFunc
}

// NewState creates a state that rebuilds with build
func NewState(build BuildFunc) *State {
	return &State{build: build}
}

// Result returns the last completed build
func (s *State) Result() (*application.BuildResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil, ErrNoBuild
	}
	return s.result, nil
}

// Rebuild runs a new build and publishes it on success. The previous
// result stays visible to readers while the build runs. Concurrent calls
// run one after the other.
func (s *State) Rebuild(ctx context.Context) (*application.BuildResult, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	res, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.result = res
	s.mu.Unlock()
	return res, nil
}
