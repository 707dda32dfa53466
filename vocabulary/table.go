package vocabulary

import (
	"iter"
	"regexp"
)

// Cells yields the capture groups of each successive non-overlapping match of
// pattern in text. Only the groups are yielded, not the whole match.
//
// The scan is lazy: stopping the iteration stops matching. Text that does not
// match is skipped, so a malformed table produces fewer rows, never an error.
func Cells(text string, pattern *regexp.Regexp) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		groups := pattern.NumSubexp()
		offset := 0
		for offset <= len(text) {
			loc := pattern.FindStringSubmatchIndex(text[offset:])
			if loc == nil {
				return
			}

			row := make([]string, groups)
			for g := 0; g < groups; g++ {
				start, end := loc[2*(g+1)], loc[2*(g+1)+1]
				if start >= 0 {
					row[g] = text[offset+start : offset+end]
				}
			}
			if !yield(row) {
				return
			}

			// Empty matches would loop forever; step past them.
			if loc[1] == loc[0] {
				offset += loc[1] + 1
			} else {
				offset += loc[1]
			}
		}
	}
}

// Column collects the group at index col from every row of Cells.
func Column(text string, pattern *regexp.Regexp, col int) []string {
	var out []string
	for row := range Cells(text, pattern) {
		if col < len(row) {
			out = append(out, row[col])
		}
	}
	return out
}
