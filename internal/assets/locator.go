// Package assets locates the animated pictogram files that rendering consumes.
package assets

import (
	"os"
	"path/filepath"
)

// Prefix is prepended to identifiers in asset directory and file names.
const Prefix = "U+"

// Locator resolves identifiers to files under a root directory laid out as
// <root>/U+<identifier>/U+<identifier>.gif.
type Locator struct {
	root string
}

// NewLocator creates a Locator rooted at dir.
func NewLocator(dir string) *Locator {
	return &Locator{root: dir}
}

// Path returns where the asset for identifier is expected, whether or not it exists.
func (l *Locator) Path(identifier string) string {
	name := Prefix + identifier
	return filepath.Join(l.root, name, name+".gif")
}

// Find returns the asset path and whether a regular file exists there.
// An absent asset is reported through the boolean, never as an error.
func (l *Locator) Find(identifier string) (string, bool) {
	path := l.Path(identifier)
	info, err := os.Stat(path)
	if err != nil {
		return path, false
	}
	return path, info.Mode().IsRegular()
}

// Missing returns, in order, the identifiers without an asset file.
func (l *Locator) Missing(identifiers []string) []string {
	missing := make([]string, 0)
	for _, id := range identifiers {
		if _, ok := l.Find(id); !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
