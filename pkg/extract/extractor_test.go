package extract_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtemplate/pkg/extract"
	"github.com/goliatone/go-formtemplate/pkg/model"
	"github.com/goliatone/go-formtemplate/pkg/testsupport"
)

func TestNew_AppliesLabels(t *testing.T) {
	tpl := `<Form Code="Act"><Simple Code="A"><Section><Param Code="X">{?External(X)?}</Param></Section></Simple></Form>`

	got := extract.New(extract.WithFieldLabel("Field"), extract.WithBlockLabel("Block")).Structure(tpl, "", nil)

	want := []model.Node{
		model.Section{Name: "Block", Children: []model.Node{
			model.Field{Type: model.FieldTypeParam, Code: "X", Name: "Field"},
		}},
	}
	if diff := cmp.Diff(want, got.Structure); diff != "" {
		t.Fatalf("structure mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractor_ConcurrentCallsDoNotInterfere(t *testing.T) {
	tpl := testsupport.MustFixture(t, testsupport.ActTemplate)
	dict := testsupport.MustFixture(t, testsupport.ActDictionary)
	extractor := extract.New()
	want := extractor.Structure(tpl, dict, nil)

	var wg sync.WaitGroup
	results := make([]model.StructureResult, 8)
	for i := range results {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = extractor.Structure(tpl, dict, nil)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("result %d differs (-want +got):\n%s", i, diff)
		}
	}
}
