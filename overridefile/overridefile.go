// Package overridefile loads dappkitty overrides from YAML or JSON files.
package overridefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"github.com/trickstertwo/dappkitty"
)

// Names are the file names Find looks for, in order.
var Names = []string{"dappkitty.yaml", "dappkitty.yml", "dappkitty.json"}

// ErrNotFound is returned by Find when no override file exists.
var ErrNotFound = errors.New("overridefile: not found")

// Load reads path from fs. JSON documents parse too, as YAML is a superset.
// A file that does not decode to an object yields empty overrides.
func Load(fs afero.Fs, path string) (dappkitty.Overrides, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return dappkitty.Overrides{}, fmt.Errorf("overridefile: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes one document.
func Parse(b []byte) (dappkitty.Overrides, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return dappkitty.Overrides{}, fmt.Errorf("overridefile: decode: %w", err)
	}
	return dappkitty.ParseOverrides(doc), nil
}

// Find returns the first of Names present in dir.
func Find(fs afero.Fs, dir string) (string, error) {
	for _, n := range Names {
		p := filepath.Join(dir, n)
		if _, err := fs.Stat(p); err == nil {
			return p, nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("overridefile: stat %s: %w", p, err)
		}
	}
	return "", ErrNotFound
}
