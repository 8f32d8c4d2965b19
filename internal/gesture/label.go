// Package gesture classifies hand landmark frames into gesture labels using
// an ordered catalog of geometric predicates.
package gesture

// Label identifies a catalog gesture. Labels are stable strings used in
// bindings, the HTTP API and the event stream.
type Label string

const (
	// None is returned for absent frames and frames no predicate claims.
	None Label = "NONE"

	Fist          Label = "FIST"
	OpenPalm      Label = "OPEN_PALM"
	PointingIndex Label = "POINTING_INDEX"
	ThumbsUp      Label = "THUMBS_UP"
	ThumbsDown    Label = "THUMBS_DOWN"
	Victory       Label = "VICTORY"
)

// Catalog returns the recognizable labels in evaluation order. None is not
// part of the catalog; it is the fallback.
func Catalog() []Label {
	return []Label{Fist, OpenPalm, PointingIndex, ThumbsUp, ThumbsDown, Victory}
}

// Valid reports whether s names a catalog label.
func Valid(s string) bool {
	for _, l := range Catalog() {
		if string(l) == s {
			return true
		}
	}
	return false
}
