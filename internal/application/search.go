package application

import (
	"encoding/json"
	"strings"

	"concepdag/internal/domain"

	"github.com/spf13/cast"
)

// BuildSearchCorpus flattens every record, in order, into a search record.
// With no search fields configured each record also carries a "search" blob
// of all metadata values.
func BuildSearchCorpus(records *domain.NodeSet, order []string, siteURL *string, fields []string) *domain.SearchCorpus {
	corpus := &domain.SearchCorpus{
		Fields: fields,
		Corpus: make([]*domain.SearchRecord, 0, len(order)),
	}
	if fields == nil {
		corpus.Fields = []string{domain.SearchBlobField}
	}

	for _, uci := range order {
		rec, ok := records.Get(uci)
		if !ok {
			continue
		}
		corpus.Corpus = append(corpus.Corpus, searchRecord(uci, rec, siteURL, fields == nil))
	}
	return corpus
}

func searchRecord(uci string, rec *domain.NodeRecord, siteURL *string, withBlob bool) *domain.SearchRecord {
	out := domain.NewSearchRecord()
	values := make([]string, 0, rec.Metadata.Len())
	for pair := rec.Metadata.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
		values = append(values, Stringify(pair.Value))
	}
	out.Set("uci", uci)
	out.Set("url", domain.NodeURL(uci, siteURL))
	if rec.Status != domain.StatusOK {
		out.Set("status", string(rec.Status))
	}
	if withBlob {
		out.Set(domain.SearchBlobField, strings.Join(values, domain.SearchBlobSeparator))
	}
	return out
}

// Stringify renders a metadata value as text. Scalars use their natural
// form, composite values their JSON encoding.
func Stringify(v any) string {
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
