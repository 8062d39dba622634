package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"concepdag/internal/domain"
	"concepdag/internal/ports"

	"golang.org/x/sync/errgroup"
)

// RecordSource implements ports.NodeSource over the records directory
type RecordSource struct {
	layout      Layout
	concurrency int
}

// Ensure RecordSource implements NodeSource
var _ ports.NodeSource = (*RecordSource)(nil)

// NewRecordSource creates a record source for the project layout
func NewRecordSource(layout Layout) *RecordSource {
	return &RecordSource{
		layout:      layout,
		concurrency: runtime.NumCPU(),
	}
}

type recordFile struct {
	uci  string
	path string
}

// listRecords walks the records directory in lexical order
func (s *RecordSource) listRecords() ([]recordFile, error) {
	dir := s.layout.RecordsDir()
	var files []recordFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		uci, err := PathUCI(dir, path)
		if err != nil {
			return err
		}
		if err := domain.ValidateUCI(uci); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		files = append(files, recordFile{uci: uci, path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return files, nil
}

// ReadRecords loads every record. Files are parsed concurrently into
// disjoint slots and assembled in walk order.
func (s *RecordSource) ReadRecords(ctx context.Context) (*domain.NodeSet, error) {
	files, err := s.listRecords()
	if err != nil {
		return nil, err
	}

	records := make([]*domain.NodeRecord, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.concurrency, 1))
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(f.path)
			if err != nil {
				return err
			}
			rec, err := domain.DecodeNodeRecord(data)
			if err != nil {
				return fmt.Errorf("%s: %w", f.uci, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	set := domain.NewNodeSet()
	for i, f := range files {
		set.Set(f.uci, records[i])
	}
	return set, nil
}

// RecordPath returns the file backing the record of uci
func (s *RecordSource) RecordPath(uci string) string {
	return UCIPath(s.layout.RecordsDir(), uci)
}

// ChangedSince lists record files modified after t
func (s *RecordSource) ChangedSince(t time.Time) ([]domain.ChangedRecord, error) {
	files, err := s.listRecords()
	if err != nil {
		return nil, err
	}
	var changed []domain.ChangedRecord
	for _, f := range files {
		info, err := os.Stat(f.path)
		if err != nil {
			return nil, err
		}
		if info.ModTime().After(t) {
			changed = append(changed, domain.ChangedRecord{
				UCI:   f.uci,
				Path:  f.path,
				Mtime: info.ModTime(),
			})
		}
	}
	return changed, nil
}
