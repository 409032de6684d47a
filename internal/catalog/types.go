package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UiType is a target framework/library a UI is generated for
type UiType struct {
	// Tag identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	DisplayName string `yaml:"display_name" json:"displayName"`
	Description string `yaml:"description" json:"description"`
}

// Model is a generation model a revision may record as its modelId
type Model struct {
	ID string `yaml:"-" json:"id"`

	DisplayName string `yaml:"display_name" json:"displayName"`
	Provider    string `yaml:"provider" json:"provider"`
}

// Catalog is the whole catalog file
type Catalog struct {
	UiTypes []UiType `yaml:"-" json:"uiTypes"` // ordered as in YAML
	Models  []Model  `yaml:"-" json:"models"`
}

// UnmarshalYAML keeps the key order of both mappings
func (c *Catalog) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		UiTypes map[string]UiType `yaml:"ui_types"`
		Models  map[string]Model  `yaml:"models"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		entries := node.Content[i+1]
		switch node.Content[i].Value {
		case "ui_types":
			for _, key := range mappingKeys(entries) {
				t := raw.UiTypes[key]
				t.ID = key
				c.UiTypes = append(c.UiTypes, t)
			}
		case "models":
			for _, key := range mappingKeys(entries) {
				m := raw.Models[key]
				m.ID = key
				c.Models = append(c.Models, m)
			}
		}
	}

	if len(c.UiTypes) == 0 {
		return fmt.Errorf("catalog defines no ui_types")
	}

	return nil
}

// mappingKeys returns the keys of a mapping node in document order
func mappingKeys(node *yaml.Node) []string {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for j := 0; j < len(node.Content); j += 2 {
		keys = append(keys, node.Content[j].Value)
	}
	return keys
}
