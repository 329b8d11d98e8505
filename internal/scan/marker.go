package scan

import (
	"regexp"
	"strings"
)

// Marker operators.
const (
	OperatorExternal = "External"
	OperatorEditor   = "Editor"
)

// Keys never contain parentheses, braces or '?', so a stray opener cannot
// swallow the marker that follows it.
var (
	markerPattern      = regexp.MustCompile(`\{\?(External|Editor)\(([^(){}?]*)\)\?\}`)
	exactMarkerPattern = regexp.MustCompile(`^\{\?(External|Editor)\(([^(){}?]*)\)\?\}$`)
)

// Marker is a `{?Operator(Key)?}` placeholder token.
type Marker struct {
	Operator string
	Key      string
	Start    int
	End      int
}

// ContainsMarker reports whether text holds the opening of a placeholder
// marker, even an incomplete one.
func ContainsMarker(text string) bool {
	return strings.Contains(text, "{?"+OperatorExternal+"(") || strings.Contains(text, "{?"+OperatorEditor+"(")
}

// FindMarker returns the first complete marker with a non-empty key.
func FindMarker(text string) (Marker, bool) {
	for _, loc := range markerPattern.FindAllStringSubmatchIndex(text, -1) {
		m := markerFromLoc(text, loc)
		if m.Key != "" {
			return m, true
		}
	}
	return Marker{}, false
}

// FindMarkers returns every complete marker in text, left to right.
func FindMarkers(text string) []Marker {
	locs := markerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	out := make([]Marker, 0, len(locs))
	for _, loc := range locs {
		out = append(out, markerFromLoc(text, loc))
	}
	return out
}

// ParseMarker parses a value that must consist of exactly one marker, as used
// by selection attributes. Empty keys are rejected.
func ParseMarker(value string) (Marker, bool) {
	loc := exactMarkerPattern.FindStringSubmatchIndex(value)
	if loc == nil {
		return Marker{}, false
	}
	m := markerFromLoc(value, loc)
	if m.Key == "" {
		return Marker{}, false
	}
	return m, true
}

func markerFromLoc(text string, loc []int) Marker {
	return Marker{
		Operator: text[loc[2]:loc[3]],
		Key:      text[loc[4]:loc[5]],
		Start:    loc[0],
		End:      loc[1],
	}
}
