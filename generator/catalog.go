package generator

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// placeholderRe matches {field} and {v:key} placeholders.
var placeholderRe = regexp.MustCompile(`\{([A-Za-z]+)(?::([A-Za-z_]+))?\}`)

// Catalog is a set of command templates grouped by category.
type Catalog struct {
	// Verbs maps a verb key to its synonyms.
	Verbs map[string][]string `yaml:"verbs"`

	// Categories are the base command families.
	Categories map[string][]string `yaml:"categories"`

	// Extended are the additional families used by Extend.
	Extended map[string][]string `yaml:"extended"`
}

// DefaultCatalog returns the built-in templates.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that there is at least one base category, that no
// category is empty and that every placeholder is known.
func (c *Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("templates: at least one category is required")
	}
	for _, group := range []map[string][]string{c.Categories, c.Extended} {
		for _, name := range sortedKeys(group) {
			templates := group[name]
			if len(templates) == 0 {
				return fmt.Errorf("templates: category %q has no templates", name)
			}
			for _, tmpl := range templates {
				if err := c.checkTemplate(tmpl); err != nil {
					return fmt.Errorf("templates: category %q: %w", name, err)
				}
			}
		}
	}
	return nil
}

func (c *Catalog) checkTemplate(tmpl string) error {
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		field, key := m[1], m[2]
		if field == "v" {
			if len(c.Verbs[key]) == 0 {
				return fmt.Errorf("unknown verb %q in %q", key, tmpl)
			}
			continue
		}
		if _, ok := fields[field]; !ok || key != "" {
			return fmt.Errorf("unknown placeholder %q in %q", m[0], tmpl)
		}
	}
	return nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
