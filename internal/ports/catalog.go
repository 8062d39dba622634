package ports

import (
	"time"

	"concepdag/internal/domain"
)

// BuildCatalog provides persisted, queryable results of the last build.
// It is fully replaced on every build; nothing in it feeds the next build
// except the last-run timestamp.
type BuildCatalog interface {
	// Lifecycle
	Open(projectPath string) error
	Close() error
	NeedsFullRebuild() bool

	// Run bookkeeping
	LastRun() (time.Time, bool, error)

	// Node queries
	GetNode(uci string) (*domain.CatalogNode, error)
	ListNodes() ([]domain.CatalogNode, error)

	// Edge queries
	FindDependents(uci string) ([]domain.CatalogEdge, error)
	FindDependencies(uci string) ([]domain.CatalogEdge, error)

	// Diagnostics
	ListBrokenDeps() (*domain.BrokenDeps, error)
	ListCycles() (*domain.CycleReport, error)

	// Batch updates
	BeginTx() (CatalogTx, error)
}

// CatalogTx represents a transaction replacing the catalog contents
type CatalogTx interface {
	Reset() error
	InsertNode(node *domain.CatalogNode) error
	InsertEdge(edge *domain.CatalogEdge) error
	InsertBrokenDep(missing, referrer string) error
	InsertCycleMember(component int, uci string) error
	SetLastRun(t time.Time) error

	// Transaction control
	Commit() error
	Rollback() error
}
