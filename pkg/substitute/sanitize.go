package substitute

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	valuePolicyOnce sync.Once
	valuePolicy     *bluemonday.Policy
)

// WithSanitizer strips markup from user values and escapes the characters
// that would otherwise break the surrounding template markup.
func WithSanitizer() Option {
	return WithValueTransform(func(_ string, value string) string {
		return SanitizeValue(value)
	})
}

// SanitizeValue applies the strict value policy to a single value.
func SanitizeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return value
	}
	return valueSanitizer().Sanitize(value)
}

func valueSanitizer() *bluemonday.Policy {
	valuePolicyOnce.Do(func() {
		valuePolicy = bluemonday.StrictPolicy()
	})
	return valuePolicy
}
