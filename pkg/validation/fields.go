// Package validation checks user-entered values against the regex hints
// attached to extracted fields. Patterns come verbatim from templates and may
// use syntax Go cannot compile; such patterns disable validation for their
// field instead of failing.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formtemplate/pkg/model"
)

// DefaultErrorText is reported when a field carries a pattern but no
// ErrorText.
const DefaultErrorText = "Неверный формат"

// ErrValidationFailed is wrapped by Errors so callers can test with errors.Is.
var ErrValidationFailed = errors.New("validation: values failed validation")

// Errors maps field codes to their validation message.
type Errors map[string]string

// Error lists the failing codes in sorted order.
func (e Errors) Error() string {
	codes := make([]string, 0, len(e))
	for code := range e {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, fmt.Sprintf("%s: %s", code, e[code]))
	}
	return fmt.Sprintf("validation: %d invalid field(s): %s", len(codes), strings.Join(parts, "; "))
}

// Unwrap exposes ErrValidationFailed.
func (e Errors) Unwrap() error {
	return ErrValidationFailed
}

// InvalidPatternHandler is notified once per field code whose pattern does
// not compile, even when several fields share the same broken pattern.
type InvalidPatternHandler func(field model.Field, err error)

// Option configures a Validator.
type Option func(*Validator)

// WithDefaultErrorText overrides DefaultErrorText.
func WithDefaultErrorText(text string) Option {
	return func(v *Validator) {
		if strings.TrimSpace(text) != "" {
			v.defaultText = text
		}
	}
}

// WithInvalidPatternHandler registers a callback for patterns that fail to
// compile.
func WithInvalidPatternHandler(fn InvalidPatternHandler) Option {
	return func(v *Validator) {
		v.onInvalid = fn
	}
}

// Validator applies field patterns. Compiled patterns are cached; a Validator
// is safe for concurrent use.
type Validator struct {
	defaultText string
	onInvalid   InvalidPatternHandler

	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
	invalid  map[string]error
	reported map[string]struct{}
}

// New constructs a Validator.
func New(options ...Option) *Validator {
	v := &Validator{
		defaultText: DefaultErrorText,
		patterns:    make(map[string]*regexp.Regexp),
		invalid:     make(map[string]error),
		reported:    make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Field validates a single value. Empty values and fields without a usable
// pattern always pass.
func (v *Validator) Field(field model.Field, value string) (string, bool) {
	if field.Regex == "" || value == "" {
		return "", true
	}
	re, ok := v.compile(field)
	if !ok {
		return "", true
	}
	if re.MatchString(value) {
		return "", true
	}
	if field.ErrorText != "" {
		return field.ErrorText, false
	}
	return v.defaultText, false
}

// Validate checks every field against values and returns nil when all pass.
func (v *Validator) Validate(fields []model.Field, values map[string]string) Errors {
	var errs Errors
	for _, field := range fields {
		message, ok := v.Field(field, values[field.Code])
		if ok {
			continue
		}
		if errs == nil {
			errs = make(Errors)
		}
		errs[field.Code] = message
	}
	return errs
}

func (v *Validator) compile(field model.Field) (*regexp.Regexp, bool) {
	v.mu.Lock()
	if re, ok := v.patterns[field.Regex]; ok {
		v.mu.Unlock()
		return re, true
	}

	err, bad := v.invalid[field.Regex]
	if !bad {
		var re *regexp.Regexp
		if re, err = Compile(field.Regex); err == nil {
			v.patterns[field.Regex] = re
			v.mu.Unlock()
			return re, true
		}
		v.invalid[field.Regex] = err
	}

	key := field.Code + "\x00" + field.Regex
	_, seen := v.reported[key]
	v.reported[key] = struct{}{}
	v.mu.Unlock()

	if !seen && v.onInvalid != nil {
		v.onInvalid(field, err)
	}
	return nil, false
}

// Compile anchors a template pattern so it must match the whole value.
func Compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("validation: compile pattern %q: %w", pattern, err)
	}
	return re, nil
}
