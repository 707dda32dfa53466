package vocabulary

import (
	"errors"
	"fmt"
)

// Kind identifies which reference document a list was parsed from.
type Kind string

// KindNames, KindLocations, KindRooms and KindObjects enumerate the document kinds.
const (
	KindNames     Kind = "names"
	KindLocations Kind = "locations"
	KindRooms     Kind = "rooms"
	KindObjects   Kind = "objects"
)

// Kinds lists every document kind in load order.
func Kinds() []Kind {
	return []Kind{KindNames, KindLocations, KindRooms, KindObjects}
}

// Warning is a non-fatal parse outcome, raised when a document yields no
// vocabulary at all.
type Warning struct {
	Kind    Kind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

func emptyWarning(kind Kind, what string) Warning {
	return Warning{
		Kind:    kind,
		Message: fmt.Sprintf("list of %s is empty, check content of %s markdown file", what, kind),
	}
}

// MalformedCategoryError reports a "# Class" heading that does not split into
// exactly a plural and a singular token.
type MalformedCategoryError struct {
	Heading string
	Tokens  int
}

func (e *MalformedCategoryError) Error() string {
	return fmt.Sprintf("malformed category heading %q: want 2 tokens (plural, singular), got %d", e.Heading, e.Tokens)
}

// IsMalformedCategory returns true if err is or wraps a MalformedCategoryError.
func IsMalformedCategory(err error) bool {
	var malformed *MalformedCategoryError
	return errors.As(err, &malformed)
}
