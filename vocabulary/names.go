package vocabulary

import "regexp"

// namePattern matches a pipe-delimited cell holding one letters-only token.
var namePattern = regexp.MustCompile(`(?s)\|\s*([A-Za-z]+)\s*\|`)

// NameCells returns every trimmed cell matching namePattern, header included.
func NameCells(doc string) []string {
	cells := Column(doc, namePattern, 0)
	for i, c := range cells {
		cells[i] = Trim(c)
	}
	return cells
}

// ParseNames extracts person names. The first matched cell is the table
// header and is always dropped, whatever it contains.
func ParseNames(doc string) ([]string, []Warning) {
	cells := NameCells(doc)
	if len(cells) <= 1 {
		return []string{}, []Warning{emptyWarning(KindNames, "names")}
	}
	return cells[1:], nil
}
