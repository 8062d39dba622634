package sqlite

import (
	"database/sql"
	"strconv"
	"time"

	"concepdag/internal/domain"
	"concepdag/internal/ports"
)

// catalogTx implements ports.CatalogTx
type catalogTx struct {
	tx          *sql.Tx
	projectPath string
}

// Ensure catalogTx implements CatalogTx
var _ ports.CatalogTx = (*catalogTx)(nil)

// Reset clears the previous build and stamps the schema metadata
func (t *catalogTx) Reset() error {
	for _, table := range []string{"nodes", "edges", "broken_deps", "cycles"} {
		if _, err := t.tx.Exec(`DELETE FROM ` + table); err != nil {
			return err
		}
	}
	if err := t.setMeta("schema_version", schemaVersion); err != nil {
		return err
	}
	return t.setMeta("project_path_hash", hashProjectPath(t.projectPath))
}

// InsertNode inserts or replaces a node
func (t *catalogTx) InsertNode(node *domain.CatalogNode) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO nodes (`+nodeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, node.UCI, node.Title, node.HasRecord, nullString(string(node.Status)), nullString(string(node.DepsStatus)),
		node.Depth, node.TopoOrder, node.NDeps, node.NRdeps, node.NTdeps, node.NTrdeps)
	return err
}

// InsertEdge appends an edge; parallel edges are kept
func (t *catalogTx) InsertEdge(edge *domain.CatalogEdge) error {
	_, err := t.tx.Exec(`
		INSERT INTO edges (from_uci, to_uci, reason)
		VALUES (?, ?, ?)
	`, edge.From, edge.To, edge.Reason)
	return err
}

func (t *catalogTx) InsertBrokenDep(missing, referrer string) error {
	_, err := t.tx.Exec(`INSERT OR IGNORE INTO broken_deps (missing, referrer) VALUES (?, ?)`, missing, referrer)
	return err
}

func (t *catalogTx) InsertCycleMember(component int, uci string) error {
	_, err := t.tx.Exec(`INSERT OR IGNORE INTO cycles (component, uci) VALUES (?, ?)`, component, uci)
	return err
}

// SetLastRun records the build time with nanosecond precision
func (t *catalogTx) SetLastRun(ts time.Time) error {
	return t.setMeta("last_run_time", strconv.FormatInt(ts.UnixNano(), 10))
}

func (t *catalogTx) setMeta(key, value string) error {
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Commit commits the transaction
func (t *catalogTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *catalogTx) Rollback() error {
	return t.tx.Rollback()
}

// nullString returns nil for empty strings (for nullable columns)
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
