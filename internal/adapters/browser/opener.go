package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"concepdag/internal/ports"
)

// Opener implements ports.URLOpener with the platform's default browser
type Opener struct {
	outputDir string
	run       func(name string, args ...string) error
}

// Ensure Opener implements URLOpener
var _ ports.URLOpener = (*Opener)(nil)

// NewOpener creates an opener resolving site-relative URLs against outputDir
func NewOpener(outputDir string) *Opener {
	return &Opener{
		outputDir: outputDir,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// OpenURL opens a node URL in the browser
func (o *Opener) OpenURL(nodeURL string) error {
	target, err := o.Resolve(nodeURL)
	if err != nil {
		return err
	}
	return o.openURI(target)
}

// Resolve turns a node URL into something a browser can load. Absolute
// URLs pass through; site-relative URLs become file:// URLs into the
// rendered output directory.
func (o *Opener) Resolve(nodeURL string) (string, error) {
	u, err := url.Parse(nodeURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", nodeURL, err)
	}
	if u.IsAbs() {
		return nodeURL, nil
	}
	if strings.HasPrefix(u.Path, "..") {
		return "", fmt.Errorf("url is outside the site: %s", nodeURL)
	}

	path, err := filepath.Abs(filepath.Join(o.outputDir, filepath.FromSlash(u.Path)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String(), nil
}

func (o *Opener) openURI(uri string) error {
	switch runtime.GOOS {
	case "darwin":
		return o.run("open", uri)
	case "linux":
		return o.run("xdg-open", uri)
	case "windows":
		return o.run("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}
