package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtemplate/pkg/model"
	"github.com/goliatone/go-formtemplate/pkg/validation"
)

func TestValidator_Validate(t *testing.T) {
	fields := []model.Field{
		{Code: "Phone", Regex: `(\+7[0-9]{1,14}|)`, ErrorText: "Шаблон: +7N"},
		{Code: "Name", Regex: `[а-яА-ЯёЁ\-]+`},
		{Code: "Free"},
		{Code: "Empty", Regex: `\d+`},
	}
	values := map[string]string{
		"Phone": "8999",
		"Name":  "Ivanov",
		"Free":  "anything",
	}

	errs := validation.New().Validate(fields, values)

	want := validation.Errors{
		"Phone": "Шаблон: +7N",
		"Name":  validation.DefaultErrorText,
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(errs, validation.ErrValidationFailed) {
		t.Fatalf("expected errors to wrap ErrValidationFailed")
	}
	if errs.Error() != "validation: 2 invalid field(s): Name: Неверный формат; Phone: Шаблон: +7N" {
		t.Fatalf("unexpected message %q", errs.Error())
	}
}

func TestValidator_AnchorsWholeValue(t *testing.T) {
	field := model.Field{Code: "A", Regex: `a|b`}
	v := validation.New()

	if _, ok := v.Field(field, "b"); !ok {
		t.Fatalf("expected b to pass")
	}
	if _, ok := v.Field(field, "ab"); ok {
		t.Fatalf("expected ab to fail")
	}
}

func TestValidator_InvalidPatternDisablesValidation(t *testing.T) {
	var reported []string
	v := validation.New(validation.WithInvalidPatternHandler(func(field model.Field, err error) {
		reported = append(reported, field.Code)
	}))
	field := model.Field{Code: "Look", Regex: `(?=x)y`}

	for i := 0; i < 2; i++ {
		if _, ok := v.Field(field, "anything"); !ok {
			t.Fatalf("invalid pattern must not fail validation")
		}
	}
	if diff := cmp.Diff([]string{"Look"}, reported); diff != "" {
		t.Fatalf("handler calls mismatch (-want +got):\n%s", diff)
	}
}

func TestValidator_InvalidPatternReportedPerField(t *testing.T) {
	var reported []string
	v := validation.New(validation.WithInvalidPatternHandler(func(field model.Field, err error) {
		if err == nil {
			t.Fatalf("handler called without an error for %s", field.Code)
		}
		reported = append(reported, field.Code)
	}))
	fields := []model.Field{
		{Code: "First", Regex: `(?=a)b`},
		{Code: "Second", Regex: `(?=a)b`},
	}

	for i := 0; i < 2; i++ {
		if errs := v.Validate(fields, map[string]string{"First": "x", "Second": "y"}); errs != nil {
			t.Fatalf("invalid patterns must not fail validation, got %v", errs)
		}
	}
	if diff := cmp.Diff([]string{"First", "Second"}, reported); diff != "" {
		t.Fatalf("handler calls mismatch (-want +got):\n%s", diff)
	}
}

func TestValidator_NoErrorsReturnsNil(t *testing.T) {
	v := validation.New(validation.WithDefaultErrorText("bad"))
	if errs := v.Validate([]model.Field{{Code: "A", Regex: `\d+`}}, map[string]string{"A": "12"}); errs != nil {
		t.Fatalf("expected nil, got %v", errs)
	}
	if msg, ok := v.Field(model.Field{Code: "A", Regex: `\d+`}, "x"); ok || msg != "bad" {
		t.Fatalf("expected custom default text, got %q %v", msg, ok)
	}
}
