package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/gpsrgen/sampler"
	"github.com/c360studio/gpsrgen/vocabulary"
)

func testVocab() *vocabulary.Set {
	return &vocabulary.Set{
		Names: []string{"Adel", "Angel"},
		Locations: vocabulary.Locations{
			All:       []string{"bed", "kitchen table", "entrance"},
			Placement: []string{"bed", "kitchen table"},
		},
		Rooms: []string{"bedroom", "kitchen"},
		Objects: vocabulary.Objects{
			Names:              []string{"soap", "sponge holder"},
			CategoriesPlural:   []string{"cleaning supplies"},
			CategoriesSingular: []string{"cleaning supply"},
		},
	}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Contains(t, c.Categories, "manipulation")
	assert.Contains(t, c.Extended, "cleaning")
	assert.NotEmpty(t, c.Verbs["take"])
}

func TestParseCatalog_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "no categories", yaml: "verbs: {}\n", wantErr: "at least one category"},
		{name: "empty category", yaml: "categories:\n  go: []\n", wantErr: "has no templates"},
		{name: "unknown verb", yaml: "categories:\n  go:\n    - \"{v:fly} to the {room}\"\n", wantErr: "unknown verb"},
		{name: "unknown field", yaml: "categories:\n  go:\n    - \"go to the {garage}\"\n", wantErr: "unknown placeholder"},
		{name: "malformed yaml", yaml: "categories: [", wantErr: "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  go:\n    - \"go to the {room}\"\n"), 0644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"go to the {room}"}, c.Categories["go"])

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGenerator_SeededIsDeterministic(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	a, err := New(testVocab(), c, 42)
	require.NoError(t, err)
	b, err := New(testVocab(), c, 42)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Generate(""), b.Generate(""))
	}
}

func TestGenerator_FillsEveryPlaceholder(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	g, err := New(testVocab(), c, 7)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		cmd := g.Generate("")
		assert.NotContains(t, cmd, "{")
		assert.NotContains(t, cmd, "  ")
		assert.Equal(t, strings.TrimSpace(cmd), cmd)
	}
}

func TestGenerator_HintRestrictsCategory(t *testing.T) {
	c, err := ParseCatalog([]byte(`
categories:
  go:
    - "go to the {room}"
  greet:
    - "greet {name}"
`))
	require.NoError(t, err)
	g, err := New(testVocab(), c, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "greet"}, g.Categories())
	for i := 0; i < 20; i++ {
		assert.True(t, strings.HasPrefix(g.Generate("greet"), "greet "))
	}

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[strings.Fields(g.Generate("no-such-category"))[0]] = true
	}
	assert.True(t, seen["go"] && seen["greet"], "unknown hint must draw from every category")
}

func TestGenerator_EmptyVocabularyIsDegenerate(t *testing.T) {
	c, err := ParseCatalog([]byte("categories:\n  go:\n    - \"go to the {room} now\"\n"))
	require.NoError(t, err)
	g, err := New(&vocabulary.Set{}, c, 1)
	require.NoError(t, err)

	assert.Equal(t, "go to the now", g.Generate(""))
}

func TestNew_RejectsInvalidCatalog(t *testing.T) {
	_, err := New(testVocab(), &Catalog{}, 1)
	assert.Error(t, err)
}

func TestExtend(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	base, err := New(testVocab(), c, 11)
	require.NoError(t, err)

	ext, err := Extend(base, c)
	require.NoError(t, err)

	assert.Subset(t, ext.Categories(), base.Categories())
	assert.Contains(t, ext.Categories(), "trash")
	assert.NotContains(t, base.Categories(), "trash")
	assert.Contains(t, []string{
		"take out the trash from the bedroom",
		"take out the trash from the kitchen",
	}, ext.Generate("trash"))
}

func TestExtend_RejectsEmptyExtendedCategory(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	base, err := New(testVocab(), c, 11)
	require.NoError(t, err)

	c.Extended = map[string][]string{"cleaning": {}}
	ext, err := Extend(base, c)
	require.Error(t, err)
	assert.Nil(t, ext)
	assert.Contains(t, err.Error(), `category "cleaning" has no templates`)
}

func TestGenerator_SaturatesFiniteOutputSpace(t *testing.T) {
	c, err := ParseCatalog([]byte(`
verbs:
  go: [go, navigate]
categories:
  navigation:
    - "{v:go} to the {room}"
`))
	require.NoError(t, err)
	g, err := New(testVocab(), c, 5)
	require.NoError(t, err)

	result := sampler.New(g, sampler.Options{MaxConsecutiveDuplicates: 200}, nil).Run()

	assert.Equal(t, 4, result.Corpus.Len())
	for _, want := range []string{"go to the bedroom", "go to the kitchen", "navigate to the bedroom", "navigate to the kitchen"} {
		assert.True(t, result.Corpus.Contains(want), want)
	}
}
