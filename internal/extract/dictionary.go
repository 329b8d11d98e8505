package extract

import (
	"regexp"

	"github.com/goliatone/go-formtemplate/pkg/model"
)

var (
	dictionaryBlockPattern = regexp.MustCompile(`<xsl:template name="(.*?)">([\s\S]*?)</xsl:template>`)
	dictionaryEntryPattern = regexp.MustCompile(`\|(\d+)\|(.*?)\|`)
)

// Dictionary parses every named xsl:template block into its option list.
// Unterminated blocks never match and are dropped.
func Dictionary(text string) model.Dictionary {
	dict := make(model.Dictionary)
	for _, block := range dictionaryBlockPattern.FindAllStringSubmatch(text, -1) {
		name, body := block[1], block[2]
		entries := dictionaryEntryPattern.FindAllStringSubmatch(body, -1)
		options := make([]model.Option, 0, len(entries))
		for _, entry := range entries {
			options = append(options, model.Option{Value: entry[1], Label: entry[2]})
		}
		dict[name] = options
	}
	return dict
}
