package domain

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// BrokenDeps maps a referenced but missing UCI to the UCIs that reference it
type BrokenDeps = orderedmap.OrderedMap[string, []string]

// CycleReport maps a component index to the members of a dependency cycle
type CycleReport = orderedmap.OrderedMap[int, []string]

// NewBrokenDeps returns an empty report
func NewBrokenDeps() *BrokenDeps {
	return orderedmap.New[string, []string]()
}

// NewCycleReport returns an empty report
func NewCycleReport() *CycleReport {
	return orderedmap.New[int, []string]()
}

// BuildStats holds statistics from a build
type BuildStats struct {
	Records    int
	Vertices   int
	Edges      int
	Broken     int
	Cycles     int
	Collisions int
	Duration   time.Duration
}
