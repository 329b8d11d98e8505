// Package tui fills a form tree interactively in the terminal. Every field is
// prompted in document order; the collected value table is serialized as the
// render output.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-formtemplate/pkg/model"
	"github.com/goliatone/go-formtemplate/pkg/render"
	"github.com/goliatone/go-formtemplate/pkg/validation"
)

const (
	// Name is the registry identifier.
	Name = "tui"

	defaultMaxAttempts = 3
	defaultSelectLabel = "-- выберите --"
	dateLayout         = "2006-01-02"
)

// Renderer implements render.Renderer for terminal sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	validator         *validation.Validator
	maxAttempts       int
	selectLabel       string
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a renderer using the survey driver and JSON output.
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		validator:    validation.New(),
		maxAttempts:  defaultMaxAttempts,
		selectLabel:  defaultSelectLabel,
		theme:        Theme{SectionPrefix: "== ", ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every field and serializes the answers. Prefilled values
// become prompt defaults; collapsed sections are only entered after a
// confirmation and otherwise keep their prefilled values.
func (r *Renderer) Render(ctx context.Context, result model.StructureResult, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	s := &session{renderer: r, opts: opts, values: make(map[string]string)}
	for code, value := range opts.Values {
		s.values[code] = value
	}
	if err := s.nodes(ctx, result.Structure, nil); err != nil {
		return nil, err
	}

	values := s.values
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values, s.order)
}

type session struct {
	renderer *Renderer
	opts     render.RenderOptions
	values   map[string]string
	order    []string
}

func (s *session) nodes(ctx context.Context, nodes []model.Node, prefix model.SectionPath) error {
	for idx, node := range nodes {
		path := prefix.Child(idx)
		switch n := node.(type) {
		case model.Section:
			if err := s.section(ctx, n, path); err != nil {
				return err
			}
		case model.Field:
			if err := s.field(ctx, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *session) section(ctx context.Context, section model.Section, path model.SectionPath) error {
	r := s.renderer
	if err := r.driver.Info(ctx, r.theme.SectionPrefix+section.Name); err != nil {
		return err
	}
	if s.opts.IsCollapsed(path.String()) {
		open, err := r.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Заполнить раздел «%s»?", section.Name)})
		if err != nil {
			return err
		}
		if !open {
			for _, field := range model.Flatten(section.Children) {
				s.order = append(s.order, field.Code)
				if _, ok := s.values[field.Code]; !ok {
					s.values[field.Code] = ""
				}
			}
			return nil
		}
	}
	return s.nodes(ctx, section.Children, path)
}

func (s *session) field(ctx context.Context, field model.Field) error {
	r := s.renderer
	s.order = append(s.order, field.Code)

	current := s.values[field.Code]
	if msg := s.opts.Error(field.Code); msg != "" {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}

	for attempt := 1; ; attempt++ {
		value, err := s.ask(ctx, field, current)
		if err != nil {
			return err
		}
		msg, ok := r.check(field, value)
		if ok {
			s.values[field.Code] = value
			return nil
		}
		if attempt >= r.maxAttempts {
			return fmt.Errorf("tui: field %q: %w: %w", field.Code, ErrTooManyAttempts, validation.Errors{field.Code: msg})
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
		current = value
	}
}

func (s *session) ask(ctx context.Context, field model.Field, current string) (string, error) {
	r := s.renderer
	message := field.Name
	if field.Type == model.FieldTypeDate {
		message += " (ГГГГ-ММ-ДД)"
	}

	switch {
	case field.Type == model.FieldTypeSelect && len(field.Options) > 0:
		labels := make([]string, 0, len(field.Options)+1)
		labels = append(labels, r.selectLabel)
		selected := 0
		for i, opt := range field.Options {
			labels = append(labels, opt.Label)
			if selected == 0 && current != "" && opt.Value == current {
				selected = i + 1
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: selected})
		if err != nil {
			return "", err
		}
		if idx <= 0 || idx > len(field.Options) {
			return "", nil
		}
		return field.Options[idx-1].Value, nil
	case field.Type == model.FieldTypeMemo:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current, Help: field.ErrorText})
	default:
		return r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: current,
			Help:    field.ErrorText,
			Validator: func(value string) error {
				if msg, ok := r.check(field, value); !ok {
					return errors.New(msg)
				}
				return nil
			},
		})
	}
}

func (r *Renderer) check(field model.Field, value string) (string, bool) {
	if field.Type == model.FieldTypeDate && value != "" {
		if _, err := time.Parse(dateLayout, value); err != nil {
			return validation.DefaultErrorText, false
		}
	}
	return r.validator.Field(field, value)
}

func (r *Renderer) serialize(values map[string]string, order []string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for code, value := range values {
			form.Set(code, value)
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, code := range order {
			fmt.Fprintf(&b, "%s: %s\n", code, values[code])
		}
		return []byte(b.String()), nil
	default:
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return out, nil
	}
}
