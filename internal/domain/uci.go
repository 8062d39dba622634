package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidUCI is returned when a string cannot be used as a UCI
var ErrInvalidUCI = errors.New("invalid UCI")

// UCIError describes why a UCI was rejected
type UCIError struct {
	UCI    string
	Reason string
}

func (e *UCIError) Error() string {
	return fmt.Sprintf("invalid UCI %q: %s", e.UCI, e.Reason)
}

func (e *UCIError) Is(target error) bool {
	return target == ErrInvalidUCI
}

// ValidateUCI checks that uci is rooted and has no empty segments
func ValidateUCI(uci string) error {
	switch {
	case uci == "":
		return &UCIError{UCI: uci, Reason: "empty"}
	case !strings.HasPrefix(uci, "/"):
		return &UCIError{UCI: uci, Reason: "relative paths are not supported"}
	case strings.Contains(uci, "//"):
		return &UCIError{UCI: uci, Reason: "found // in path"}
	}
	return nil
}

// UCISegments splits a UCI into its path segments, without the leading slash
func UCISegments(uci string) []string {
	return strings.Split(strings.TrimPrefix(uci, "/"), "/")
}

// NodeURL returns the page URL of a node. Without a site URL the result is
// relative to the site root.
func NodeURL(uci string, siteURL *string) string {
	page := "nodes" + uci + ".html"
	if siteURL == nil {
		return page
	}
	return strings.TrimSuffix(*siteURL, "/") + "/" + page
}

// RelativeSiteURL returns the path from a node's page back to the site root,
// e.g. "../.." for "/a/b".
func RelativeSiteURL(uci string) string {
	return strings.TrimSuffix(strings.Repeat("../", strings.Count(uci, "/")), "/")
}
