package orchestrator_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formtemplate/pkg/model"
	"github.com/goliatone/go-formtemplate/pkg/orchestrator"
)

const presetJSON = `{
  "sections": {"0.1": {"name": "Владелец"}},
  "fields": {
    "FIO2": {"name": "Имя владельца", "regex": "[А-Я][а-я]+", "errorText": "С заглавной буквы"}
  }
}`

func TestJSONPresetTransformer(t *testing.T) {
	transformer, err := orchestrator.NewJSONPresetTransformerFromFS(fstest.MapFS{
		"preset.json": {Data: []byte(presetJSON)},
	}, "preset.json")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}

	orch := orchestrator.New(orchestrator.WithTransformer(transformer))
	result, err := orch.Structure(context.Background(), fixtureRequest(t))
	if err != nil {
		t.Fatalf("structure: %v", err)
	}

	section, ok := model.SectionAt(result.Structure, model.SectionPath{0, 1})
	if !ok || section.Name != "Владелец" {
		t.Fatalf("expected renamed section, got %+v", section)
	}
	field, _ := model.FieldByCode(result.Structure, "FIO2")
	if field.Name != "Имя владельца" || field.Regex != "[А-Я][а-я]+" || field.ErrorText != "С заглавной буквы" {
		t.Fatalf("field patch not applied: %+v", field)
	}

	out, err := orch.Fill(context.Background(), orchestrator.FillRequest{
		Request: fixtureRequest(t),
		Values:  map[string]string{"FIO2": "иван"},
	})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if out.Errors["FIO2"] != "С заглавной буквы" {
		t.Fatalf("expected patched validation, got %v", out.Errors)
	}
}

func TestNewJSONPresetTransformer_Errors(t *testing.T) {
	if _, err := orchestrator.NewJSONPresetTransformer([]byte("  ")); err == nil {
		t.Fatalf("expected empty document error")
	}
	if _, err := orchestrator.NewJSONPresetTransformer([]byte("{")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := orchestrator.NewJSONPresetTransformerFromFS(nil, "x.json"); err == nil {
		t.Fatalf("expected nil filesystem error")
	}
}

func TestTransformerFunc(t *testing.T) {
	var calls int
	orch := orchestrator.New(orchestrator.WithTransformer(orchestrator.TransformerFunc(
		func(_ context.Context, result *model.StructureResult) error {
			calls++
			result.Structure = result.Structure[:1]
			return nil
		},
	)))
	result, err := orch.Structure(context.Background(), fixtureRequest(t))
	if err != nil {
		t.Fatalf("structure: %v", err)
	}
	if calls != 1 || len(result.Structure) != 1 {
		t.Fatalf("expected transformer applied once, calls=%d sections=%d", calls, len(result.Structure))
	}
}
