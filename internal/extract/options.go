package extract

// Default labels used when the markup omits a Name attribute.
const (
	DefaultFieldLabel   = "Без названия"
	DefaultBlockLabel   = "Без названия"
	DefaultSectionLabel = "Раздел"
)

// Options configures an Extractor. Zero values fall back to the defaults.
type Options struct {
	FieldLabel   string
	BlockLabel   string
	SectionLabel string
	// Forms lists the Form codes whose blocks are surfaced. Defaults to
	// Act and Info.
	Forms []string
}

func (o Options) withDefaults() Options {
	if o.FieldLabel == "" {
		o.FieldLabel = DefaultFieldLabel
	}
	if o.BlockLabel == "" {
		o.BlockLabel = DefaultBlockLabel
	}
	if o.SectionLabel == "" {
		o.SectionLabel = DefaultSectionLabel
	}
	if len(o.Forms) == 0 {
		o.Forms = []string{"Act", "Info"}
	}
	return o
}
