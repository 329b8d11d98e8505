package vanilla

import (
	"strings"

	"github.com/goliatone/go-formtemplate/pkg/model"
)

// Control names. Theme partials override a control with the key
// "forms.<control>".
const (
	ControlInput    = "input"
	ControlDate     = "date"
	ControlSelect   = "select"
	ControlTextarea = "textarea"
)

func controlFor(t model.FieldType) string {
	switch t {
	case model.FieldTypeDate:
		return ControlDate
	case model.FieldTypeSelect:
		return ControlSelect
	case model.FieldTypeMemo:
		return ControlTextarea
	default:
		return ControlInput
	}
}

func controlTemplate(control string, partials map[string]string) string {
	if override := strings.TrimSpace(partials["forms."+control]); override != "" {
		return override
	}
	return "templates/controls/" + control + ".tmpl"
}

func controlID(code string) string {
	return "ft-" + code
}
