package musclemap

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// MuscleInfo is an override-table entry: the key and label assigned to a
// mesh with a specific raw name.
type MuscleInfo struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// catalogFile is the YAML layout of a catalog.
type catalogFile struct {
	Overrides map[string]MuscleInfo `yaml:"overrides"`
	Links     [][]string            `yaml:"links"`
}

// Catalog holds the static override table (raw mesh name → key/label) and the
// link table (key → keys that highlight together).
type Catalog struct {
	overrides map[string]MuscleInfo
	links     map[string][]string
}

// DefaultCatalog returns the catalog embedded in the package.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic("musclemap: embedded catalog: " + err.Error())
	}
	return c
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("musclemap: read catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("musclemap: catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes a YAML catalog. Override keys are normalized, and
// every link group is made symmetric: each member links to all members.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := NewCatalog()
	for raw, info := range f.Overrides {
		if raw == "" {
			return nil, fmt.Errorf("parse catalog: override with empty mesh name")
		}
		c.SetOverride(raw, info)
	}
	for i, group := range f.Links {
		if len(group) == 0 {
			return nil, fmt.Errorf("parse catalog: link group %d is empty", i)
		}
		c.Link(group...)
	}
	return c, nil
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		overrides: make(map[string]MuscleInfo),
		links:     make(map[string][]string),
	}
}

// SetOverride registers the key and label for meshes named raw. An empty
// key is derived from the label.
func (c *Catalog) SetOverride(raw string, info MuscleInfo) {
	if info.Key == "" {
		info.Key = NormalizeKey(info.Label)
	} else {
		info.Key = NormalizeKey(info.Key)
	}
	if info.Label == "" {
		info.Label = PrettifyName(info.Key)
	}
	c.overrides[raw] = info
}

// Lookup returns the override for a raw mesh name.
func (c *Catalog) Lookup(raw string) (MuscleInfo, bool) {
	if c == nil {
		return MuscleInfo{}, false
	}
	info, ok := c.overrides[raw]
	return info, ok
}

// Link makes every key in keys highlight together with every other.
// Linking is symmetric and adds to any existing entries for those keys.
func (c *Catalog) Link(keys ...string) {
	norm := make([]string, 0, len(keys))
	for _, k := range keys {
		norm = appendUnique(norm, NormalizeKey(k))
	}
	for _, k := range norm {
		group := c.links[k]
		if len(group) == 0 {
			group = []string{k}
		}
		for _, other := range norm {
			group = appendUnique(group, other)
		}
		c.links[k] = group
	}
}

// Linked returns the set of keys that highlight together with key, always
// including key itself. Without a link entry the result is {key}.
func (c *Catalog) Linked(key string) []string {
	if c != nil {
		if group, ok := c.links[key]; ok {
			out := make([]string, len(group))
			copy(out, group)
			return out
		}
	}
	return []string{key}
}

// NumOverrides returns the size of the override table.
func (c *Catalog) NumOverrides() int {
	return len(c.overrides)
}

func appendUnique(s []string, v string) []string {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}
