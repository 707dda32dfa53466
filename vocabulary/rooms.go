package vocabulary

import "regexp"

// roomPattern matches a cell with a word, a space and an optional second word.
var roomPattern = regexp.MustCompile(`(?s)\|\s*([\p{L}\p{N}_]+ [\p{L}\p{N}_]*)\s*\|`)

// RoomCells returns every trimmed cell matching roomPattern, header included.
func RoomCells(doc string) []string {
	cells := Column(doc, roomPattern, 0)
	for i, c := range cells {
		cells[i] = Trim(c)
	}
	return cells
}

// ParseRooms extracts room names such as "living room". Like ParseNames, the
// first matched cell is treated as the header and dropped.
func ParseRooms(doc string) ([]string, []Warning) {
	cells := RoomCells(doc)
	if len(cells) <= 1 {
		return []string{}, []Warning{emptyWarning(KindRooms, "rooms")}
	}
	return cells[1:], nil
}
