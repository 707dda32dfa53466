package vocabulary

import "strings"

// PlacementMarker flags a location as a place where objects can be set down.
const PlacementMarker = "(p)"

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// StripMarker reports whether the trimmed value ends with marker and returns
// the value with every occurrence of marker removed, trimmed again.
func StripMarker(s, marker string) (string, bool) {
	s = Trim(s)
	present := strings.HasSuffix(s, marker)
	return Trim(strings.ReplaceAll(s, marker, "")), present
}

// Despace replaces each underscore with a single space.
func Despace(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// Normalize trims s and replaces underscores with spaces.
func Normalize(s string) string {
	return Trim(Despace(s))
}
