// Package generator turns vocabulary into natural-language robot commands
// by filling randomly chosen templates.
package generator

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/c360studio/gpsrgen/vocabulary"
)

// fields maps template placeholders onto vocabulary lists.
var fields = map[string]func(*vocabulary.Set) []string{
	"name":     func(s *vocabulary.Set) []string { return s.Names },
	"loc":      func(s *vocabulary.Set) []string { return s.Locations.All },
	"plcmtLoc": func(s *vocabulary.Set) []string { return s.Locations.Placement },
	"room":     func(s *vocabulary.Set) []string { return s.Rooms },
	"obj":      func(s *vocabulary.Set) []string { return s.Objects.Names },
	"singCat":  func(s *vocabulary.Set) []string { return s.Objects.CategoriesSingular },
	"plurCat":  func(s *vocabulary.Set) []string { return s.Objects.CategoriesPlural },
}

type category struct {
	name      string
	templates []string
}

// Generator fills templates from a Catalog with vocabulary drawn at random.
// It is not safe for concurrent use.
type Generator struct {
	vocab      *vocabulary.Set
	verbs      map[string][]string
	categories []category
	rng        *rand.Rand
}

// New builds a generator for vocab. A zero seed seeds from the clock.
func New(vocab *vocabulary.Set, catalog *Catalog, seed uint64) (*Generator, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		vocab:      vocab,
		verbs:      catalog.Verbs,
		categories: toCategories(catalog.Categories),
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Generate returns one command. A hint naming a known category restricts
// the draw to it; an empty or unknown hint draws from every category.
func (g *Generator) Generate(categoryHint string) string {
	return g.generate(categoryHint, g.categories)
}

// Categories lists the category names the generator draws from.
func (g *Generator) Categories() []string {
	return names(g.categories)
}

func (g *Generator) generate(hint string, pool []category) string {
	candidates := pool
	if hint != "" {
		for _, c := range pool {
			if c.name == hint {
				candidates = []category{c}
				break
			}
		}
	}

	cat := candidates[g.rng.IntN(len(candidates))]
	tmpl := cat.templates[g.rng.IntN(len(cat.templates))]
	return g.render(tmpl)
}

// render replaces each placeholder. Placeholders backed by an empty list
// render as nothing and the surrounding spaces are collapsed.
func (g *Generator) render(tmpl string) string {
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(ph string) string {
		m := placeholderRe.FindStringSubmatch(ph)
		if m[1] == "v" {
			return g.pick(g.verbs[m[2]])
		}
		if list, ok := fields[m[1]]; ok {
			return g.pick(list(g.vocab))
		}
		return ph
	})
	return strings.Join(strings.Fields(out), " ")
}

func (g *Generator) pick(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[g.rng.IntN(len(list))]
}

// Extended wraps a Generator with additional command categories. It is
// invoked exactly like the base generator.
type Extended struct {
	base *Generator
	pool []category
}

// Extend adds the catalog's extended categories to base. Randomness,
// vocabulary and verbs are shared with base, so catalog is normally the one
// base was built from.
func Extend(base *Generator, catalog *Catalog) (*Extended, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	pool := make([]category, 0, len(base.categories)+len(catalog.Extended))
	pool = append(pool, base.categories...)
	pool = append(pool, toCategories(catalog.Extended)...)
	return &Extended{base: base, pool: pool}, nil
}

// Generate returns one command from the base or extended categories.
func (e *Extended) Generate(categoryHint string) string {
	return e.base.generate(categoryHint, e.pool)
}

// Categories lists the base and extended category names.
func (e *Extended) Categories() []string {
	return names(e.pool)
}

func toCategories(m map[string][]string) []category {
	out := make([]category, 0, len(m))
	for _, name := range sortedKeys(m) {
		out = append(out, category{name: name, templates: m[name]})
	}
	return out
}

func names(cats []category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.name
	}
	return out
}
