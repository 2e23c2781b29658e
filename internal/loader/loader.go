// Package loader ingests manuscript files into attributed documents.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/quillpilot/folio/internal/document"
)

// Format defines a file format loader that produces an attributed document.
type Format interface {
	Name() string
	Extensions() []string
	Load(filename string) (*document.Document, error)
}

var registry []Format

// Register adds a format loader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// LoadDocument loads a manuscript, using a registered format or a plain text
// fallback for unknown extensions.
func LoadDocument(filename string) (*document.Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f.Load(filename)
			}
		}
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return document.FromString(string(data)), nil
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}
