// Package vocabulary extracts typed word lists from the markdown reference
// documents that describe a robot arena: person names, locations, rooms and
// objects with their category names.
//
// # Overview
//
// The reference documents are hand-maintained and loosely formatted. Every
// list is recovered from markdown pipe-tables with a single regular
// expression per list, and rows that do not match are skipped without being
// reported. Nothing here validates table structure.
//
// # Parsers
//
//   - ParseNames: one cell per row, the first matched cell is the header
//   - ParseLocations: id and description cells, "(p)" marks placement locations
//   - ParseRooms: one or two word cells, the first matched cell is the header
//   - ParseObjects: object cells plus "# Class <plural> (<singular>)" headings
//
// A parser that recovers nothing returns an empty result together with a
// Warning. Warnings are not errors; callers log them and keep going. The only
// error a parser returns is MalformedCategoryError, for a category heading
// that does not split into exactly a plural and a singular form.
//
// Word cells (rooms, objects, category headings) accept any Unicode letter
// or digit plus underscore, so "crème_brûlée" is an object. Name cells and
// location descriptions are ASCII letters only; accented names are skipped.
//
// # Objects warning asymmetry
//
// ParseObjects warns only when both the object pass and the category pass
// come back empty. A document with objects but no category headings (or the
// reverse) parses silently. Existing documents rely on this, so keep it.
package vocabulary
