package application

import (
	"errors"

	"concepdag/internal/domain"
	"concepdag/internal/graph"
)

// BuildIndexTree places every record, in order, into the site index.
// UCIs that collide with an existing section or leaf are left out and
// returned as collisions.
func BuildIndexTree(g *graph.Graph, records *domain.NodeSet, order []string, siteURL *string) (*domain.IndexTree, []*domain.IndexCollisionError, error) {
	tree := domain.NewIndexTree()
	var collisions []*domain.IndexCollisionError

	for _, uci := range order {
		rec, ok := records.Get(uci)
		if !ok {
			continue
		}
		metrics, err := Metrics(g, uci)
		if err != nil {
			return nil, nil, invariant("index", err)
		}
		leaf := &domain.IndexLeaf{
			UCI:          uci,
			URL:          domain.NodeURL(uci, siteURL),
			Status:       rec.Status,
			DepsStatus:   rec.DepsStatus,
			GraphMetrics: metrics,
			Metadata:     rec.Metadata,
		}
		if err := tree.Add(leaf); err != nil {
			var ce *domain.IndexCollisionError
			if errors.As(err, &ce) {
				collisions = append(collisions, ce)
				continue
			}
			return nil, nil, err
		}
	}
	return tree, collisions, nil
}
