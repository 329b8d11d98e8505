package vanilla

import (
	"strconv"

	"github.com/goliatone/go-formtemplate/pkg/model"
	"github.com/goliatone/go-formtemplate/pkg/render"
	"github.com/goliatone/go-formtemplate/pkg/validation"
)

const (
	rowOpen  = "open"
	rowClose = "close"
	rowField = "field"
)

// row is one line of the flattened tree. Sections become an open and a close
// row around their children. Numbers are kept as strings because template data
// passes through JSON.
type row struct {
	Kind      string     `json:"kind"`
	Depth     string     `json:"depth"`
	Path      string     `json:"path"`
	Name      string     `json:"name,omitempty"`
	Collapsed bool       `json:"collapsed,omitempty"`
	Field     *fieldView `json:"-"`
	HTML      string     `json:"html,omitempty"`
}

type fieldView struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	Pattern    string       `json:"pattern,omitempty"`
	ErrorText  string       `json:"error_text,omitempty"`
	Dictionary string       `json:"dictionary,omitempty"`
	Value      string       `json:"value"`
	Error      string       `json:"error,omitempty"`
	Options    []optionView `json:"options,omitempty"`
	control    string
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

type themeView struct {
	Name    string `json:"name,omitempty"`
	Variant string `json:"variant,omitempty"`
	Style   string `json:"style,omitempty"`
}

type formView struct {
	Title       string       `json:"title,omitempty"`
	Method      string       `json:"method"`
	Action      string       `json:"action,omitempty"`
	Stylesheet  string       `json:"stylesheet,omitempty"`
	InlineCSS   string       `json:"inline_css,omitempty"`
	SubmitLabel string       `json:"submit_label"`
	Hidden      []hiddenView `json:"hidden,omitempty"`
	Theme       themeView    `json:"theme"`
	Rows        []row        `json:"rows"`
}

type controlView struct {
	Field       *fieldView `json:"field"`
	SelectLabel string     `json:"select_label"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func buildRows(nodes []model.Node, opts render.RenderOptions) []row {
	return appendRows(nil, nodes, nil, 0, opts)
}

func appendRows(rows []row, nodes []model.Node, prefix model.SectionPath, depth int, opts render.RenderOptions) []row {
	for idx, node := range nodes {
		path := prefix.Child(idx)
		switch n := node.(type) {
		case model.Section:
			key := path.String()
			rows = append(rows, row{Kind: rowOpen, Depth: strconv.Itoa(depth), Path: key, Name: n.Name, Collapsed: opts.IsCollapsed(key)})
			rows = appendRows(rows, n.Children, path, depth+1, opts)
			rows = append(rows, row{Kind: rowClose, Depth: strconv.Itoa(depth), Path: key})
		case model.Field:
			rows = append(rows, row{Kind: rowField, Depth: strconv.Itoa(depth), Path: path.String(), Field: newFieldView(n, opts)})
		}
	}
	return rows
}

func newFieldView(field model.Field, opts render.RenderOptions) *fieldView {
	value := opts.Value(field.Code)
	view := &fieldView{
		ID:         controlID(field.Code),
		Type:       string(field.Type),
		Code:       field.Code,
		Name:       field.Name,
		ErrorText:  field.ErrorText,
		Dictionary: field.Dictionary,
		Value:      value,
		Error:      opts.Error(field.Code),
		control:    controlFor(field.Type),
	}
	// Browsers anchor the pattern attribute themselves; only patterns Go can
	// compile are forwarded.
	if field.Regex != "" {
		if _, err := validation.Compile(field.Regex); err == nil {
			view.Pattern = field.Regex
		}
	}
	selected := false
	for _, opt := range field.Options {
		hit := !selected && value != "" && opt.Value == value
		selected = selected || hit
		view.Options = append(view.Options, optionView{Value: opt.Value, Label: opt.Label, Selected: hit})
	}
	return view
}
