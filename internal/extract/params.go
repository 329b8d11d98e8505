package extract

import (
	"github.com/goliatone/go-formtemplate/internal/scan"
	"github.com/goliatone/go-formtemplate/pkg/model"
)

var paramNames = func() []string {
	kinds := model.FieldTypes()
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, string(kind))
	}
	return names
}()

// params extracts the fillable fields declared in region, in source order.
// Alias entries and code counters are recorded on the pass.
func (p *pass) params(region string) []model.Field {
	var fields []model.Field
	for _, el := range scan.Elements(region, scan.Options{RequireAttrs: true}, paramNames...) {
		if field, ok := p.param(el); ok {
			fields = append(fields, field)
		}
	}
	return fields
}

func (p *pass) param(el scan.Element) (model.Field, bool) {
	kind := model.FieldType(el.Name)
	if el.SelfClosing || !kind.Valid() {
		return model.Field{}, false
	}

	var (
		selected    scan.Marker
		hasSelected bool
	)
	if kind == model.FieldTypeSelect {
		if value, ok := scan.Attr(el.Attrs, "CodeSelected"); ok {
			selected, hasSelected = scan.ParseMarker(value)
		}
	}
	if !scan.ContainsMarker(el.Body) && !hasSelected {
		return model.Field{}, false
	}

	rawCode, _ := scan.Attr(el.Attrs, "Code")
	aliasKey := ""
	if kind == model.FieldTypeSelect {
		if key, ok := choiceCode(el.Body); ok {
			rawCode, aliasKey = key, key
		} else if hasSelected {
			rawCode, aliasKey = selected.Key, selected.Key
		}
	} else if marker, ok := scan.FindMarker(el.Body); ok {
		aliasKey = marker.Key
	}
	if rawCode == "" {
		return model.Field{}, false
	}

	code, suffix := p.claimCode(rawCode)
	if aliasKey != "" {
		p.aliases[code] = aliasKey + suffix
	}

	field := model.Field{
		Type: kind,
		Code: code,
		Name: p.opts.FieldLabel,
	}
	if name, ok := scan.Attr(el.Attrs, "Name"); ok {
		field.Name = name
	}
	field.Regex, _ = scan.Attr(el.Attrs, "RegEx")
	field.ErrorText, _ = scan.Attr(el.Attrs, "ErrorText")

	if kind == model.FieldTypeSelect {
		if name, ok := scan.Attr(el.Attrs, "Dictionary"); ok {
			if options, found := p.dict.Lookup(name); found {
				field.Dictionary = name
				field.Options = options
			}
		}
	}
	return field, true
}

// choiceCode returns the key of the first nested parameter tag whose Code
// attribute is a placeholder marker.
func choiceCode(body string) (string, bool) {
	for _, tag := range scan.Tags(body, scan.Options{}, paramNames...) {
		value, ok := scan.Attr(tag.Attrs, "Code")
		if !ok {
			continue
		}
		if marker, ok := scan.ParseMarker(value); ok {
			return marker.Key, true
		}
	}
	return "", false
}
