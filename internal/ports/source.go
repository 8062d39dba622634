package ports

import (
	"context"
	"time"

	"concepdag/internal/domain"
)

// NodeSource defines the interface for reading the parser's node records
type NodeSource interface {
	// ReadRecords loads every record, keyed by UCI in discovery order
	ReadRecords(ctx context.Context) (*domain.NodeSet, error)

	// RecordPath returns the file backing the record of uci
	RecordPath(uci string) string

	// ChangedSince lists record files modified after t
	ChangedSince(t time.Time) ([]domain.ChangedRecord, error)
}

// ArtifactStore defines the interface for persisting build output for the renderer
type ArtifactStore interface {
	// Prepare removes per-node output left by a previous build
	Prepare() error

	WriteContext(uci string, ctx *domain.NodeContext) error
	WriteIndex(tree *domain.IndexTree) error
	WriteBrokenDeps(broken *domain.BrokenDeps) error
	WriteCycles(cycles *domain.CycleReport) error
	WriteTopoOrder(order []string) error
	WriteSearch(corpus *domain.SearchCorpus) error
}

// RecordWatcher notifies about changes to record files
type RecordWatcher interface {
	// Watch blocks until ctx is done, calling onChange with the changed
	// paths after each burst of file events.
	Watch(ctx context.Context, onChange func(paths []string)) error
}
