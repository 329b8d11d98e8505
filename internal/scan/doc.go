// Package scan is a permissive, non-validating scanner for the template
// markup. The dialect embeds `{?Operator(KEY)?}` markers inside attribute
// values and bodies and is frequently not well formed, so encoding/xml cannot
// be used. The scanner only understands start tags, matching end tags (with
// same-name nesting), self-closing tags, double-quoted attributes and
// placeholder markers; everything else is opaque text.
package scan
