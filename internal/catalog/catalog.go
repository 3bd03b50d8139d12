package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/default.yaml
var defaultCatalogYAML []byte

// Catalog is the read-only content supplied to the quiz engine.
type Catalog struct {
	Categories []Category `json:"categories" yaml:"categories"`
	Questions  []Question `json:"questions" yaml:"questions"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog. It panics if the embedded data is
// malformed, since that is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultCatalogYAML, ".yaml")
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded catalog: %v", defaultErr))
	}
	return defaultCat
}

// Load reads a catalog from a YAML or JSON file and validates it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog data. ext selects the format (".json" or YAML for
// anything else) and the result is validated before it is returned.
func Parse(data []byte, ext string) (*Catalog, error) {
	var c Catalog
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes the catalog as YAML.
func (c *Catalog) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Merge appends other's categories and questions, skipping categories that
// already exist. The merged catalog is validated.
func (c *Catalog) Merge(other *Catalog) (*Catalog, error) {
	out := &Catalog{
		Categories: append([]Category(nil), c.Categories...),
		Questions:  append([]Question(nil), c.Questions...),
	}
	for _, cat := range other.Categories {
		if _, ok := out.Category(cat.ID); !ok {
			out.Categories = append(out.Categories, cat)
		}
	}
	out.Questions = append(out.Questions, other.Questions...)
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Category looks up a category by ID.
func (c *Catalog) Category(id string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// CountByCategory returns the number of questions in each category.
func (c *Catalog) CountByCategory() map[string]int {
	counts := make(map[string]int, len(c.Categories))
	for _, q := range c.Questions {
		counts[q.Category]++
	}
	return counts
}

// SubTopics returns the distinct sub-topic labels of a category, sorted.
func (c *Catalog) SubTopics(category string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range c.Questions {
		if q.Category != category || q.SubTopic == "" || seen[q.SubTopic] {
			continue
		}
		seen[q.SubTopic] = true
		out = append(out, q.SubTopic)
	}
	sort.Strings(out)
	return out
}

// ByID indexes questions by ID.
func (c *Catalog) ByID() map[string]Question {
	m := make(map[string]Question, len(c.Questions))
	for _, q := range c.Questions {
		m[q.ID] = q
	}
	return m
}
