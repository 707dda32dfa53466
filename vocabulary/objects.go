package vocabulary

import (
	"fmt"
	"regexp"
	"strings"
)

// ObjectHeader is the header label of the object tables.
const ObjectHeader = "Objectname"

var (
	// objectPattern matches a cell holding a single word token.
	objectPattern = regexp.MustCompile(`(?s)\|\s*([\p{L}\p{N}_]+)\s*\|`)

	// categoryPattern matches "# Class <plural> (<singular>)" headings.
	categoryPattern = regexp.MustCompile(`(?s)# Class \s*([\p{L}\p{N}_,\s, \(,\)]+)\s*`)
)

// Objects holds the object names and the index-aligned category forms, one
// plural/singular pair per category heading in document order.
type Objects struct {
	Names              []string `json:"names" yaml:"names"`
	CategoriesPlural   []string `json:"categories_plural" yaml:"categories_plural"`
	CategoriesSingular []string `json:"categories_singular" yaml:"categories_singular"`
}

// ObjectNames runs the object pass: single-word cells minus the header
// label, underscores replaced by spaces.
func ObjectNames(doc string) []string {
	var names []string
	for _, cell := range Column(doc, objectPattern, 0) {
		if cell == ObjectHeader {
			continue
		}
		names = append(names, Normalize(cell))
	}
	return names
}

// CategoryHeadings returns the trimmed text after "# Class" for every heading.
func CategoryHeadings(doc string) []string {
	headings := Column(doc, categoryPattern, 0)
	for i, h := range headings {
		headings[i] = Trim(h)
	}
	return headings
}

// SplitCategory turns a heading such as "cleaning_supplies (cleaning_supply)"
// into its plural and singular forms.
func SplitCategory(heading string) (plural, singular string, err error) {
	bare := strings.NewReplacer("(", "", ")", "").Replace(heading)
	tokens := strings.Fields(bare)
	if len(tokens) != 2 {
		return "", "", &MalformedCategoryError{Heading: heading, Tokens: len(tokens)}
	}
	return Despace(tokens[0]), Despace(tokens[1]), nil
}

// ParseObjects runs the object and category passes over the same document.
// It warns only when both passes come back empty.
func ParseObjects(doc string) (Objects, []Warning, error) {
	names := ObjectNames(doc)
	headings := CategoryHeadings(doc)

	if len(names) == 0 && len(headings) == 0 {
		return Objects{
			Names:              []string{},
			CategoriesPlural:   []string{},
			CategoriesSingular: []string{},
		}, []Warning{emptyWarning(KindObjects, "objects or object categories")}, nil
	}

	objs := Objects{
		Names:              names,
		CategoriesPlural:   make([]string, 0, len(headings)),
		CategoriesSingular: make([]string, 0, len(headings)),
	}
	if objs.Names == nil {
		objs.Names = []string{}
	}
	for i, h := range headings {
		plural, singular, err := SplitCategory(h)
		if err != nil {
			return Objects{}, nil, fmt.Errorf("category %d: %w", i+1, err)
		}
		objs.CategoriesPlural = append(objs.CategoriesPlural, plural)
		objs.CategoriesSingular = append(objs.CategoriesSingular, singular)
	}
	return objs, nil, nil
}
