package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"concepdag/internal/adapters/filesystem"
	"concepdag/internal/domain"
	"concepdag/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// Catalog implements ports.BuildCatalog using SQLite
type Catalog struct {
	db          *sql.DB
	projectPath string
	dbPath      string
}

// Ensure Catalog implements BuildCatalog
var _ ports.BuildCatalog = (*Catalog)(nil)

// NewCatalog creates a new SQLite catalog
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Open initializes the catalog for the given project path
func (c *Catalog) Open(projectPath string) error {
	projectPath = filesystem.ExpandHome(projectPath)
	if abs, err := filepath.Abs(projectPath); err == nil {
		projectPath = abs
	}

	c.projectPath = projectPath
	c.dbPath = databasePath(projectPath)

	if err := os.MkdirAll(filepath.Dir(c.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", c.dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS nodes (
			uci TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			has_record INTEGER NOT NULL,
			status TEXT,
			deps_status TEXT,
			depth INTEGER NOT NULL,
			topo_order INTEGER NOT NULL,
			n_deps INTEGER NOT NULL,
			n_rdeps INTEGER NOT NULL,
			n_tdeps INTEGER NOT NULL,
			n_trdeps INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS edges (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			from_uci TEXT NOT NULL,
			to_uci TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS broken_deps (
			missing TEXT NOT NULL,
			referrer TEXT NOT NULL,
			PRIMARY KEY (missing, referrer)
		);
		CREATE TABLE IF NOT EXISTS cycles (
			component INTEGER NOT NULL,
			uci TEXT NOT NULL,
			PRIMARY KEY (component, uci)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_edges_from ON edges(from_uci);
		CREATE INDEX IF NOT EXISTS idx_edges_to ON edges(to_uci);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close closes the database connection
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Path returns the database file backing the catalog
func (c *Catalog) Path() string {
	return c.dbPath
}

// NeedsFullRebuild returns true if the catalog was written by another
// schema version or for another project
func (c *Catalog) NeedsFullRebuild() bool {
	version, _ := c.meta("schema_version")
	projectHash, _ := c.meta("project_path_hash")
	return version != schemaVersion || projectHash != hashProjectPath(c.projectPath)
}

// LastRun returns the time of the last committed build
func (c *Catalog) LastRun() (time.Time, bool, error) {
	value, err := c.meta("last_run_time")
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	nanos, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid last run time %q: %w", value, err)
	}
	return time.Unix(0, nanos), true, nil
}

func (c *Catalog) meta(key string) (string, error) {
	var value string
	err := c.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	return value, err
}

// databasePath returns the path for the SQLite database
func databasePath(projectPath string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "concepdag", hashProjectPath(projectPath)+".db")
}

// hashProjectPath returns a short hash of the project path
func hashProjectPath(projectPath string) string {
	h := sha256.Sum256([]byte(projectPath))
	return hex.EncodeToString(h[:8])
}

const nodeColumns = `uci, title, has_record, status, deps_status, depth, topo_order, n_deps, n_rdeps, n_tdeps, n_trdeps`

type scanner interface {
	Scan(dest ...any) error
}

func scanNode(row scanner) (*domain.CatalogNode, error) {
	var node domain.CatalogNode
	var status, depsStatus sql.NullString
	err := row.Scan(&node.UCI, &node.Title, &node.HasRecord, &status, &depsStatus,
		&node.Depth, &node.TopoOrder, &node.NDeps, &node.NRdeps, &node.NTdeps, &node.NTrdeps)
	if err != nil {
		return nil, err
	}
	node.Status = domain.Status(status.String)
	node.DepsStatus = domain.Status(depsStatus.String)
	return &node, nil
}

// GetNode retrieves a node by UCI; it returns nil when the node is unknown
func (c *Catalog) GetNode(uci string) (*domain.CatalogNode, error) {
	node, err := scanNode(c.db.QueryRow(`SELECT `+nodeColumns+` FROM nodes WHERE uci = ?`, uci))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return node, err
}

// ListNodes returns every node in processing order
func (c *Catalog) ListNodes() ([]domain.CatalogNode, error) {
	rows, err := c.db.Query(`SELECT ` + nodeColumns + ` FROM nodes ORDER BY topo_order, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []domain.CatalogNode
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, *node)
	}
	return nodes, rows.Err()
}

// FindDependents returns the edges leaving uci
func (c *Catalog) FindDependents(uci string) ([]domain.CatalogEdge, error) {
	return c.queryEdges(`SELECT from_uci, to_uci, reason FROM edges WHERE from_uci = ? ORDER BY seq`, uci)
}

// FindDependencies returns the edges entering uci
func (c *Catalog) FindDependencies(uci string) ([]domain.CatalogEdge, error) {
	return c.queryEdges(`SELECT from_uci, to_uci, reason FROM edges WHERE to_uci = ? ORDER BY seq`, uci)
}

func (c *Catalog) queryEdges(query, uci string) ([]domain.CatalogEdge, error) {
	rows, err := c.db.Query(query, uci)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []domain.CatalogEdge
	for rows.Next() {
		var e domain.CatalogEdge
		if err := rows.Scan(&e.From, &e.To, &e.Reason); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// ListBrokenDeps returns the referrers of every missing node, in the order
// the build reported them
func (c *Catalog) ListBrokenDeps() (*domain.BrokenDeps, error) {
	rows, err := c.db.Query(`SELECT missing, referrer FROM broken_deps ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	broken := domain.NewBrokenDeps()
	for rows.Next() {
		var missing, referrer string
		if err := rows.Scan(&missing, &referrer); err != nil {
			return nil, err
		}
		refs, _ := broken.Get(missing)
		broken.Set(missing, append(refs, referrer))
	}
	return broken, rows.Err()
}

// ListCycles returns the members of every multi-node component, keyed by
// component index
func (c *Catalog) ListCycles() (*domain.CycleReport, error) {
	rows, err := c.db.Query(`SELECT component, uci FROM cycles ORDER BY component, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cycles := domain.NewCycleReport()
	for rows.Next() {
		var component int
		var uci string
		if err := rows.Scan(&component, &uci); err != nil {
			return nil, err
		}
		members, _ := cycles.Get(component)
		cycles.Set(component, append(members, uci))
	}
	return cycles, rows.Err()
}

// BeginTx starts a new transaction
func (c *Catalog) BeginTx() (ports.CatalogTx, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return nil, err
	}
	return &catalogTx{tx: tx, projectPath: c.projectPath}, nil
}
