package scan

import "strings"

// Attr returns the value of the first double-quoted attribute called name.
// The name must start the attribute run or follow whitespace, so `Code` never
// matches inside `ParentCode`. Empty values are reported as absent.
func Attr(attrs, name string) (string, bool) {
	needle := name + `="`
	pos := 0
	for pos < len(attrs) {
		rel := strings.Index(attrs[pos:], needle)
		if rel < 0 {
			return "", false
		}
		at := pos + rel
		if at > 0 && !isSpace(attrs[at-1]) {
			pos = at + len(needle)
			continue
		}
		valueStart := at + len(needle)
		valueEnd := strings.IndexByte(attrs[valueStart:], '"')
		if valueEnd < 0 {
			return "", false
		}
		value := attrs[valueStart : valueStart+valueEnd]
		if value == "" {
			return "", false
		}
		return value, true
	}
	return "", false
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
