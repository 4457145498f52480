// Package garment holds the catalog of garment types and the measurement
// sheet each one requires.
package garment

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Part is one piece of a garment with its measurement fields.
type Part struct {
	Name   string   `yaml:"name" json:"name"`
	Fields []string `yaml:"fields" json:"fields"`
}

// Type is a garment the shop makes.
type Type struct {
	Name  string `yaml:"type" json:"type"`
	Parts []Part `yaml:"parts" json:"parts"`
}

// Catalog is an ordered, validated list of garment types.
type Catalog struct {
	types  []Type
	byName map[string]int
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var types []Type
	if err := yaml.Unmarshal(data, &types); err != nil {
		return nil, fmt.Errorf("garment: decode catalog: %w", err)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("garment: catalog is empty")
	}

	c := &Catalog{types: types, byName: make(map[string]int, len(types))}
	for i, t := range types {
		key := normalize(t.Name)
		if key == "" {
			return nil, fmt.Errorf("garment: entry %d has no type name", i)
		}
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("garment: duplicate type %q", t.Name)
		}
		if len(t.Parts) == 0 {
			return nil, fmt.Errorf("garment: type %q has no parts", t.Name)
		}
		for _, p := range t.Parts {
			if strings.TrimSpace(p.Name) == "" || len(p.Fields) == 0 {
				return nil, fmt.Errorf("garment: type %q has an incomplete part", t.Name)
			}
		}
		c.byName[key] = i
	}
	return c, nil
}

var defaultCatalog = mustParse(catalogYAML)

func mustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Types lists the garment types in catalog order.
func (c *Catalog) Types() []Type {
	out := make([]Type, len(c.types))
	copy(out, c.types)
	return out
}

// Lookup finds a garment type by name, ignoring case and surrounding space.
func (c *Catalog) Lookup(name string) (Type, bool) {
	i, ok := c.byName[normalize(name)]
	if !ok {
		return Type{}, false
	}
	return c.types[i], true
}

// Names lists the garment type names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.types))
	for i, t := range c.types {
		names[i] = t.Name
	}
	return names
}

// Validate checks a measurement sheet against the garment's parts. Unknown
// parts and fields and negative values are rejected. Missing fields are
// allowed since measurements are often taken over several fittings.
func (c *Catalog) Validate(garmentType string, sheet map[string]map[string]float64) error {
	t, ok := c.Lookup(garmentType)
	if !ok {
		return fmt.Errorf("unknown garment type %q", garmentType)
	}

	parts := make(map[string]map[string]bool, len(t.Parts))
	for _, p := range t.Parts {
		fields := make(map[string]bool, len(p.Fields))
		for _, f := range p.Fields {
			fields[f] = true
		}
		parts[p.Name] = fields
	}

	for part, values := range sheet {
		fields, ok := parts[part]
		if !ok {
			return fmt.Errorf("%s has no part %q", t.Name, part)
		}
		for field, v := range values {
			if !fields[field] {
				return fmt.Errorf("%s %s has no field %q", t.Name, part, field)
			}
			if v < 0 {
				return fmt.Errorf("%s %s %s must not be negative", t.Name, part, field)
			}
		}
	}
	return nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
