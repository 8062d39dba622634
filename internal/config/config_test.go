package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProjectPath(t *testing.T) {
	t.Setenv("CONCEPDAG_PROJECT", "")
	if got := ProjectPath(); got != DefaultProjectPath {
		t.Errorf("ProjectPath() = %q, want %q", got, DefaultProjectPath)
	}
	t.Setenv("CONCEPDAG_PROJECT", "/srv/notes")
	if got := ProjectPath(); got != "/srv/notes" {
		t.Errorf("ProjectPath() = %q", got)
	}
}

func TestLogLevel(t *testing.T) {
	t.Setenv("CONCEPDAG_LOG_LEVEL", "")
	if got := LogLevel(); got != "info" {
		t.Errorf("LogLevel() = %q", got)
	}
	t.Setenv("CONCEPDAG_LOG_LEVEL", "debug")
	if got := LogLevel(); got != "debug" {
		t.Errorf("LogLevel() = %q", got)
	}
}

func TestLoadSite(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    string
		wantName   string
		wantTitle  string
		wantURL    string
		wantFields int
		transitive bool
	}{
		{
			name:       "no config",
			wantName:   "ConcepDAG",
			wantTitle:  "ConcepDAG",
			transitive: true,
		},
		{
			name:       "json name only",
			file:       "config.json",
			content:    `{"NAME": "Notes", "SITEURL": "https://example.org"}`,
			wantName:   "Notes",
			wantTitle:  "Notes",
			wantURL:    "https://example.org",
			transitive: true,
		},
		{
			name:       "json title and fields",
			file:       "config.json",
			content:    `{"TITLE": "My Notes", "SEARCH_FIELDS": ["title", "desc"], "TRANSITIVE_DEPS": false}`,
			wantName:   "ConcepDAG",
			wantTitle:  "My Notes",
			wantFields: 2,
		},
		{
			name:       "yaml",
			file:       "config.yaml",
			content:    "NAME: Wiki\nSITEURL: https://wiki.example.org\n",
			wantName:   "Wiki",
			wantTitle:  "Wiki",
			wantURL:    "https://wiki.example.org",
			transitive: true,
		},
		{
			name:       "debug drops site url",
			file:       "config.json",
			content:    `{"SITEURL": "https://example.org", "DEBUG": true}`,
			wantName:   "ConcepDAG",
			wantTitle:  "ConcepDAG",
			transitive: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.file != "" {
				if err := os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.content), 0644); err != nil {
					t.Fatal(err)
				}
			}
			site, err := LoadSite(dir)
			if err != nil {
				t.Fatalf("LoadSite() error = %v", err)
			}
			if site.Name != tt.wantName || site.Title != tt.wantTitle {
				t.Errorf("name/title = %q/%q, want %q/%q", site.Name, site.Title, tt.wantName, tt.wantTitle)
			}
			gotURL := ""
			if site.SiteURL != nil {
				gotURL = *site.SiteURL
			}
			if gotURL != tt.wantURL {
				t.Errorf("SiteURL = %q, want %q", gotURL, tt.wantURL)
			}
			if len(site.SearchFields) != tt.wantFields {
				t.Errorf("SearchFields = %v", site.SearchFields)
			}
			if site.Transitive() != tt.transitive {
				t.Errorf("Transitive() = %v", site.Transitive())
			}
		})
	}
}

func TestLoadSite_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSite(dir); err == nil {
		t.Error("expected parse error")
	}
}
