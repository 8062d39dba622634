package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSiteName is used when the site config does not name the site
const DefaultSiteName = "ConcepDAG"

// Site is the site configuration read from the project's input directory
type Site struct {
	Name           string   `json:"NAME" yaml:"NAME"`
	Title          string   `json:"TITLE" yaml:"TITLE"`
	SiteURL        *string  `json:"SITEURL" yaml:"SITEURL"`
	SearchFields   []string `json:"SEARCH_FIELDS" yaml:"SEARCH_FIELDS"`
	TransitiveDeps *bool    `json:"TRANSITIVE_DEPS" yaml:"TRANSITIVE_DEPS"`
	Debug          bool     `json:"DEBUG" yaml:"DEBUG"`
}

// LoadSite reads input/config.json, else input/config.yaml, else returns
// the defaults. A missing file is not an error.
func LoadSite(inputDir string) (*Site, error) {
	site := &Site{}

	jsonPath := filepath.Join(inputDir, "config.json")
	yamlPath := filepath.Join(inputDir, "config.yaml")

	if data, err := os.ReadFile(jsonPath); err == nil {
		if err := json.Unmarshal(data, site); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", jsonPath, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	} else if data, err := os.ReadFile(yamlPath); err == nil {
		if err := yaml.Unmarshal(data, site); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", yamlPath, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	site.applyDefaults()
	return site, nil
}

func (s *Site) applyDefaults() {
	if s.Title == "" && s.Name != "" {
		s.Title = s.Name
	}
	if s.Name == "" {
		s.Name = DefaultSiteName
	}
	if s.Title == "" {
		s.Title = s.Name
	}
	if s.Debug {
		s.SiteURL = nil
	}
}

// Transitive reports whether node contexts carry the transitive deps list
func (s *Site) Transitive() bool {
	return s.TransitiveDeps == nil || *s.TransitiveDeps
}
