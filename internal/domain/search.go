package domain

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SearchBlobField is the field holding the joined metadata text when no
// explicit search fields are configured.
const SearchBlobField = "search"

// SearchBlobSeparator joins metadata values in the search blob
const SearchBlobSeparator = " $ "

// SearchRecord is one flattened entry of the search corpus
type SearchRecord = orderedmap.OrderedMap[string, any]

// NewSearchRecord returns an empty search record
func NewSearchRecord() *SearchRecord {
	return orderedmap.New[string, any]()
}

// SearchCorpus is the search artifact consumed by the site's client-side search
type SearchCorpus struct {
	Fields []string        `json:"fields"`
	Corpus []*SearchRecord `json:"corpus"`
}

// SearchResult is a ranked hit from a corpus query
type SearchResult struct {
	UCI   string
	Title string
	URL   string
	Score int
}
