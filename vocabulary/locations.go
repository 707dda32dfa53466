package vocabulary

import "regexp"

// locationPattern matches a numeric id cell followed by a description cell
// of letters, commas, whitespace and parentheses.
var locationPattern = regexp.MustCompile(`(?s)\|\s*([0-9]+)\s*\|\s*([A-Za-z,\s, \(,\)]+)\|`)

// Locations holds every location and the subset that accepts placed objects.
type Locations struct {
	All       []string `json:"all" yaml:"all"`
	Placement []string `json:"placement" yaml:"placement"`
}

// LocationDescriptions returns the raw description cell of each matched row.
// The id cell is dropped.
func LocationDescriptions(doc string) []string {
	return Column(doc, locationPattern, 1)
}

// ParseLocations extracts locations. A description ending in "(p)" is also a
// placement location; the marker is stripped from both lists.
func ParseLocations(doc string) (Locations, []Warning) {
	descriptions := LocationDescriptions(doc)
	if len(descriptions) == 0 {
		return Locations{All: []string{}, Placement: []string{}}, []Warning{emptyWarning(KindLocations, "locations")}
	}

	locs := Locations{
		All:       make([]string, 0, len(descriptions)),
		Placement: []string{},
	}
	for _, d := range descriptions {
		name, placement := StripMarker(d, PlacementMarker)
		locs.All = append(locs.All, name)
		if placement {
			locs.Placement = append(locs.Placement, name)
		}
	}
	return locs, nil
}
