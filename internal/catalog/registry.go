package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry answers membership questions against the embedded catalog.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	catalog Catalog
	uiTypes map[string]struct{}
	models  map[string]struct{}
}

// NewRegistry loads the embedded catalog
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from catalog YAML
func Parse(data []byte) (*Registry, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	r := &Registry{
		catalog: c,
		uiTypes: make(map[string]struct{}, len(c.UiTypes)),
		models:  make(map[string]struct{}, len(c.Models)),
	}
	for _, t := range c.UiTypes {
		r.uiTypes[t.ID] = struct{}{}
	}
	for _, m := range c.Models {
		r.models[m.ID] = struct{}{}
	}

	return r, nil
}

// HasUiType reports whether tag is a known ui type
func (r *Registry) HasUiType(tag string) bool {
	_, ok := r.uiTypes[tag]
	return ok
}

// HasModel reports whether id is a known model
func (r *Registry) HasModel(id string) bool {
	_, ok := r.models[id]
	return ok
}

// Catalog returns the full catalog in file order
func (r *Registry) Catalog() Catalog {
	return r.catalog
}
