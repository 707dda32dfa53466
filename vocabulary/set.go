package vocabulary

import (
	"fmt"
	"log/slog"
)

// Set is the complete vocabulary handed to a command generator. It is
// read-only once parsed.
type Set struct {
	Names     []string  `json:"names" yaml:"names"`
	Locations Locations `json:"locations" yaml:"locations"`
	Rooms     []string  `json:"rooms" yaml:"rooms"`
	Objects   Objects   `json:"objects" yaml:"objects"`
}

// Documents holds the raw text of each reference document.
type Documents struct {
	Names     string
	Locations string
	Rooms     string
	Objects   string
}

// Parse runs every parser over docs. Warnings are collected, not returned as
// errors; the only error is a malformed category heading.
func Parse(docs Documents) (*Set, []Warning, error) {
	var warnings []Warning

	names, w := ParseNames(docs.Names)
	warnings = append(warnings, w...)

	locs, w := ParseLocations(docs.Locations)
	warnings = append(warnings, w...)

	rooms, w := ParseRooms(docs.Rooms)
	warnings = append(warnings, w...)

	objs, w, err := ParseObjects(docs.Objects)
	if err != nil {
		return nil, warnings, fmt.Errorf("parse objects: %w", err)
	}
	warnings = append(warnings, w...)

	return &Set{
		Names:     names,
		Locations: locs,
		Rooms:     rooms,
		Objects:   objs,
	}, warnings, nil
}

// LogWarnings reports each warning at warn level.
func LogWarnings(logger *slog.Logger, warnings []Warning) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, w := range warnings {
		logger.Warn("Vocabulary list is empty",
			"kind", string(w.Kind),
			"detail", w.Message)
	}
}

// Sizes summarises how many entries each list holds.
func (s *Set) Sizes() map[string]int {
	return map[string]int{
		"names":               len(s.Names),
		"locations":           len(s.Locations.All),
		"placement_locations": len(s.Locations.Placement),
		"rooms":               len(s.Rooms),
		"objects":             len(s.Objects.Names),
		"categories":          len(s.Objects.CategoriesPlural),
	}
}
