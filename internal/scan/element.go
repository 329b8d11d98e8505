package scan

import (
	"regexp"
	"strings"
	"sync"
)

// Element is a start tag plus everything up to its matching end tag.
type Element struct {
	Name        string
	Attrs       string
	Body        string
	SelfClosing bool
	// Start and End are byte offsets of the whole element within the scanned
	// text; text[Start:End] reproduces it verbatim.
	Start int
	End   int
}

// Options tunes how start tags are recognised.
type Options struct {
	// RequireAttrs rejects start tags without at least one whitespace
	// separated attribute run (`<Param>` and `<Param/>` are not elements).
	RequireAttrs bool
}

var (
	patternsMu sync.Mutex
	patterns   = map[string]*regexp.Regexp{}
)

func openPattern(names []string, opts Options) *regexp.Regexp {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	attrs := `((?:\s|/)[^>]*)?`
	if opts.RequireAttrs {
		attrs = `(\s[^>]*)`
	}
	expr := `<(` + strings.Join(quoted, "|") + `)` + attrs + `>`

	patternsMu.Lock()
	defer patternsMu.Unlock()
	if re, ok := patterns[expr]; ok {
		return re
	}
	re := regexp.MustCompile(expr)
	patterns[expr] = re
	return re
}

// Elements returns the top-level elements named one of names, in document
// order. Start tags without a matching end tag are ignored and scanning
// resumes right after them.
func Elements(text string, opts Options, names ...string) []Element {
	if text == "" || len(names) == 0 {
		return nil
	}
	re := openPattern(names, opts)

	var out []Element
	pos := 0
	for pos < len(text) {
		loc := re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, openEnd := pos+loc[0], pos+loc[1]
		name := text[pos+loc[2] : pos+loc[3]]
		attrs := ""
		if loc[4] >= 0 {
			attrs = text[pos+loc[4] : pos+loc[5]]
		}

		if strings.HasSuffix(attrs, "/") {
			out = append(out, Element{
				Name:        name,
				Attrs:       strings.TrimSuffix(attrs, "/"),
				SelfClosing: true,
				Start:       start,
				End:         openEnd,
			})
			pos = openEnd
			continue
		}

		bodyEnd, end, ok := findClose(text, openEnd, name)
		if !ok {
			pos = openEnd
			continue
		}
		out = append(out, Element{
			Name:  name,
			Attrs: attrs,
			Body:  text[openEnd:bodyEnd],
			Start: start,
			End:   end,
		})
		pos = end
	}
	return out
}

// Tags returns every start or self-closing tag named one of names, including
// tags nested inside other matches. Bodies are not resolved.
func Tags(text string, opts Options, names ...string) []Element {
	if text == "" || len(names) == 0 {
		return nil
	}
	re := openPattern(names, opts)

	matches := re.FindAllStringSubmatchIndex(text, -1)
	out := make([]Element, 0, len(matches))
	for _, loc := range matches {
		attrs := ""
		if loc[4] >= 0 {
			attrs = text[loc[4]:loc[5]]
		}
		out = append(out, Element{
			Name:        text[loc[2]:loc[3]],
			Attrs:       strings.TrimSuffix(attrs, "/"),
			SelfClosing: strings.HasSuffix(attrs, "/"),
			Start:       loc[0],
			End:         loc[1],
		})
	}
	return out
}

// findClose locates the end tag matching a start tag of name whose `>` ends
// at from. Nested start tags with the same name are balanced.
func findClose(text string, from int, name string) (bodyEnd, end int, ok bool) {
	closeTag := "</" + name + ">"
	depth := 1
	pos := from
	for {
		rel := strings.Index(text[pos:], closeTag)
		if rel < 0 {
			return 0, 0, false
		}
		closeAt := pos + rel

		if openEnd := nextOpen(text, pos, closeAt, name); openEnd >= 0 {
			depth++
			pos = openEnd
			continue
		}

		depth--
		if depth == 0 {
			return closeAt, closeAt + len(closeTag), true
		}
		pos = closeAt + len(closeTag)
	}
}

// nextOpen returns the offset just past the first non self-closing start tag
// of name in text[from:limit], or -1.
func nextOpen(text string, from, limit int, name string) int {
	prefix := "<" + name
	pos := from
	for pos < limit {
		rel := strings.Index(text[pos:limit], prefix)
		if rel < 0 {
			return -1
		}
		at := pos + rel
		after := at + len(prefix)
		if after >= len(text) {
			return -1
		}
		switch text[after] {
		case ' ', '\t', '\n', '\r', '/', '>':
		default:
			pos = after
			continue
		}
		gt := strings.IndexByte(text[after:], '>')
		if gt < 0 {
			return -1
		}
		tagEnd := after + gt
		if tagEnd > after && text[tagEnd-1] == '/' {
			pos = tagEnd + 1
			continue
		}
		return tagEnd + 1
	}
	return -1
}
