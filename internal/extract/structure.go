package extract

import (
	"github.com/goliatone/go-formtemplate/internal/scan"
	"github.com/goliatone/go-formtemplate/pkg/model"
)

var blockNames = []string{"Simple", "Alt", "Multi"}

// Extractor turns template markup into a field/section tree. It holds no
// per-call state and is safe for concurrent use.
type Extractor struct {
	opts Options
}

// New constructs an Extractor.
func New(opts Options) *Extractor {
	return &Extractor{opts: opts.withDefaults()}
}

// Dictionary parses dictionary markup.
func (e *Extractor) Dictionary(text string) model.Dictionary {
	return Dictionary(text)
}

// Structure parses the template and dictionary markup and returns the ordered
// tree plus the alias map. Excluded block codes are never surfaced.
func (e *Extractor) Structure(templateText, dictionaryText string, excluded []string) model.StructureResult {
	p := newPass(e.opts, Dictionary(dictionaryText), excluded)

	structure := []model.Node{}
	for _, form := range scan.Elements(templateText, scan.Options{}, "Form") {
		if form.SelfClosing || !e.surfacesForm(form) {
			continue
		}
		for _, block := range scan.Elements(form.Body, scan.Options{}, blockNames...) {
			if block.SelfClosing {
				continue
			}
			code, _ := scan.Attr(block.Attrs, "Code")
			if !p.claimBlock(code) {
				continue
			}
			structure = append(structure, p.block(block))
		}
	}

	return model.StructureResult{Structure: structure, AliasMap: p.aliases}
}

func (e *Extractor) surfacesForm(form scan.Element) bool {
	code, ok := scan.Attr(form.Attrs, "Code")
	if !ok {
		return false
	}
	for _, want := range e.opts.Forms {
		if code == want {
			return true
		}
	}
	return false
}

func (p *pass) block(el scan.Element) model.Section {
	section := model.Section{Name: p.opts.BlockLabel, Children: []model.Node{}}
	if name, ok := scan.Attr(el.Attrs, "Name"); ok {
		section.Name = name
	}
	for _, wrapper := range scan.Elements(el.Body, scan.Options{}, "Section") {
		section.Children = append(section.Children, p.wrapper(wrapper)...)
	}
	return section
}

// wrapper turns a Section element into nodes. A wrapper carrying a Code is a
// labelled section; one without is transparent and its children are spliced
// into the parent.
func (p *pass) wrapper(el scan.Element) []model.Node {
	if el.SelfClosing {
		return nil
	}
	children := p.wrapperBody(el.Body)
	if _, labelled := scan.Attr(el.Attrs, "Code"); !labelled {
		return children
	}

	section := model.Section{Name: p.opts.SectionLabel, Children: children}
	if section.Children == nil {
		section.Children = []model.Node{}
	}
	if name, ok := scan.Attr(el.Attrs, "Name"); ok {
		section.Name = name
	}
	return []model.Node{section}
}

func (p *pass) wrapperBody(body string) []model.Node {
	var out []model.Node
	cursor := 0
	for _, nested := range scan.Elements(body, scan.Options{}, "Section") {
		out = appendFields(out, p.params(body[cursor:nested.Start]))
		out = append(out, p.wrapper(nested)...)
		cursor = nested.End
	}
	return appendFields(out, p.params(body[cursor:]))
}

func appendFields(nodes []model.Node, fields []model.Field) []model.Node {
	for _, field := range fields {
		nodes = append(nodes, field)
	}
	return nodes
}
