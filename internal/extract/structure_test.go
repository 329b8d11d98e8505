package extract

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtemplate/pkg/model"
	"github.com/goliatone/go-formtemplate/pkg/testsupport"
)

func act(blocks string) string {
	return `<Doc><Form Code="Act">` + blocks + `</Form></Doc>`
}

func TestStructure_EndToEndExample(t *testing.T) {
	tpl := act(`<Simple Code="Act" Name="Акт">
  <Section Code="Owner" Name="Owner">
    <ParamText Code="FIO1" Name="Фамилия">{?External(FIO1)?}</ParamText>
    <ParamText Code="FIO1" Name="Фамилия 2">{?External(FIO1)?}</ParamText>
  </Section>
</Simple>`)

	got := New(Options{}).Structure(tpl, "", nil)

	want := model.StructureResult{
		Structure: []model.Node{
			model.Section{Name: "Акт", Children: []model.Node{
				model.Section{Name: "Owner", Children: []model.Node{
					model.Field{Type: model.FieldTypeText, Code: "FIO1", Name: "Фамилия"},
					model.Field{Type: model.FieldTypeText, Code: "FIO1_2", Name: "Фамилия 2"},
				}},
			}},
		},
		AliasMap: model.AliasMap{"FIO1": "FIO1", "FIO1_2": "FIO1_2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("structure mismatch (-want +got):\n%s", diff)
	}
}

func TestStructure_Fixture(t *testing.T) {
	tpl := testsupport.MustFixture(t, testsupport.ActTemplate)
	dict := testsupport.MustFixture(t, testsupport.ActDictionary)

	got := New(Options{}).Structure(tpl, dict, []string{"Versions"})

	rightKind := []model.Option{
		{Value: "1", Label: "Собственность"},
		{Value: "2", Label: "Аренда"},
		{Value: "2", Label: "Аренда"},
	}
	material := []model.Option{
		{Value: "01", Label: "Кирпич"},
		{Value: "02", Label: "Панель"},
	}
	want := []model.Node{
		model.Section{Name: "Общие сведения", Children: []model.Node{
			model.Field{Type: model.FieldTypeDate, Code: "ActDate", Name: "Дата акта"},
			model.Section{Name: "Собственник", Children: []model.Node{
				model.Field{Type: model.FieldTypeText, Code: "FIO1", Name: "Фамилия", Regex: `[а-яА-ЯёЁ\-]+`, ErrorText: "Русские буквы"},
				model.Field{Type: model.FieldTypeText, Code: "FIO2", Name: "Имя"},
				model.Field{Type: model.FieldTypeSelect, Code: "RightKind", Name: "Вид права", Dictionary: "RightKind", Options: rightKind},
			}},
		}},
		model.Section{Name: "Здание", Children: []model.Node{
			model.Section{Name: "Адрес", Children: []model.Node{
				model.Field{Type: model.FieldTypeMemo, Code: "Address", Name: "Адрес объекта"},
				model.Field{Type: model.FieldTypeText, Code: "AreaCode", Name: "Кадастровый номер"},
				model.Section{Name: "Вложенный", Children: []model.Node{
					model.Field{Type: model.FieldTypeText, Code: "AreaCode_2", Name: "Кадастровый номер участка"},
				}},
			}},
			model.Field{Type: model.FieldTypeSelect, Code: "Material", Name: "Материал стен", Dictionary: "Material", Options: material},
		}},
		model.Section{Name: "Контакты", Children: []model.Node{
			model.Field{Type: model.FieldTypeText, Code: "Phone", Name: "Телефон", Regex: `(\+7[0-9]{1,14}|)`, ErrorText: "Шаблон: +7N, где N - цифры"},
		}},
	}
	if diff := cmp.Diff(want, got.Structure); diff != "" {
		t.Fatalf("structure mismatch (-want +got):\n%s", diff)
	}

	wantAliases := model.AliasMap{
		"ActDate":    "ActDate",
		"FIO1":       "FIO1",
		"FIO2":       "FIO2",
		"RightKind":  "RightKind",
		"Address":    "Address",
		"AreaCode":   "AreaCode",
		"AreaCode_2": "AreaCode_2",
		"Material":   "Material",
		"Phone":      "Phone",
	}
	if diff := cmp.Diff(wantAliases, got.AliasMap); diff != "" {
		t.Fatalf("alias map mismatch (-want +got):\n%s", diff)
	}
}

func TestStructure_Deterministic(t *testing.T) {
	tpl := testsupport.MustFixture(t, testsupport.ActTemplate)
	dict := testsupport.MustFixture(t, testsupport.ActDictionary)
	extractor := New(Options{})

	first, err := json.Marshal(extractor.Structure(tpl, dict, nil))
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	second, err := json.Marshal(extractor.Structure(tpl, dict, nil))
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("repeated extraction differs:\n%s\n%s", first, second)
	}
}

func TestStructure_CodesUniqueAndOrdered(t *testing.T) {
	tpl := act(`<Simple Code="A"><Section>
<Param Code="X">{?External(X)?}</Param>
<Param Code="X_2">{?External(Y)?}</Param>
<Param Code="X">{?External(X)?}</Param>
<Param Code="Z">{?External(Z)?}</Param>
</Section></Simple>`)

	got := New(Options{}).Structure(tpl, "", nil)

	codes := make([]string, 0)
	for _, field := range model.Flatten(got.Structure) {
		codes = append(codes, field.Code)
	}
	if diff := cmp.Diff([]string{"X", "X_2", "X_3", "Z"}, codes); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if got.AliasMap["X_3"] != "X_3" || got.AliasMap["X_2"] != "Y" {
		t.Fatalf("unexpected aliases: %v", got.AliasMap)
	}
}

func TestStructure_SuffixSkipsVerbatimCode(t *testing.T) {
	tpl := act(`<Simple Code="A"><Section>
<ParamText Code="X_2">{?External(X_2)?}</ParamText>
<ParamText Code="X">{?External(X)?}</ParamText>
<ParamText Code="X">{?External(X)?}</ParamText>
</Section></Simple>`)

	got := New(Options{}).Structure(tpl, "", nil)

	codes := make([]string, 0)
	for _, field := range model.Flatten(got.Structure) {
		codes = append(codes, field.Code)
	}
	if diff := cmp.Diff([]string{"X_2", "X", "X_3"}, codes); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	want := model.AliasMap{"X": "X", "X_2": "X_2", "X_3": "X_3"}
	if diff := cmp.Diff(want, got.AliasMap); diff != "" {
		t.Fatalf("alias map mismatch (-want +got):\n%s", diff)
	}
}

func TestStructure_CollisionSuffixingSharedAcrossBlocks(t *testing.T) {
	tpl := act(`<Simple Code="A"><Section><ParamText Code="AreaCode">{?External(Area)?}</ParamText></Section></Simple>
<Multi Code="B"><Section><ParamText Code="AreaCode">{?Editor(Area)?}</ParamText></Section></Multi>`)

	got := New(Options{}).Structure(tpl, "", nil)

	want := model.AliasMap{"AreaCode": "Area", "AreaCode_2": "Area_2"}
	if diff := cmp.Diff(want, got.AliasMap); diff != "" {
		t.Fatalf("alias map mismatch (-want +got):\n%s", diff)
	}
}

func TestStructure_BlockDedupAcrossForms(t *testing.T) {
	tpl := `<Form Code="Act"><Simple Code="Dup" Name="first"><Section><Param Code="A">{?External(A)?}</Param></Section></Simple></Form>
<Form Code="Info"><Alt Code="Dup" Name="second"><Section><Param Code="B">{?External(B)?}</Param></Section></Alt></Form>`

	got := New(Options{}).Structure(tpl, "", nil)

	if len(got.Structure) != 1 {
		t.Fatalf("expected one block, got %d", len(got.Structure))
	}
	if name := got.Structure[0].(model.Section).Name; name != "first" {
		t.Fatalf("expected first block to win, got %q", name)
	}
	if _, ok := got.AliasMap["B"]; ok {
		t.Fatalf("dropped block must not contribute aliases")
	}
}

func TestStructure_Exclusion(t *testing.T) {
	tpl := act(`<Simple Code="Keep"><Section><Param Code="A">{?External(A)?}</Param></Section></Simple>
<Simple Code="Print"><Section><Param Code="B">{?External(B)?}</Param></Section></Simple>`)

	got := New(Options{}).Structure(tpl, "", []string{"Print"})

	if len(got.Structure) != 1 {
		t.Fatalf("expected one block, got %d", len(got.Structure))
	}
	if diff := cmp.Diff(model.AliasMap{"A": "A"}, got.AliasMap); diff != "" {
		t.Fatalf("alias map mismatch (-want +got):\n%s", diff)
	}
}

func TestStructure_FlattensUnlabelledWrappers(t *testing.T) {
	tpl := act(`<Simple Code="A" Name="Block"><Section>
  <Param Code="Top">{?External(Top)?}</Param>
  <Section Code="Labelled" Name="Sub"><Param Code="In">{?External(In)?}</Param></Section>
  <Section><Param Code="Flat">{?External(Flat)?}</Param></Section>
  <Param Code="Tail">{?External(Tail)?}</Param>
</Section></Simple>`)

	got := New(Options{}).Structure(tpl, "", nil)

	want := []model.Node{
		model.Section{Name: "Block", Children: []model.Node{
			model.Field{Type: model.FieldTypeParam, Code: "Top", Name: DefaultFieldLabel},
			model.Section{Name: "Sub", Children: []model.Node{
				model.Field{Type: model.FieldTypeParam, Code: "In", Name: DefaultFieldLabel},
			}},
			model.Field{Type: model.FieldTypeParam, Code: "Flat", Name: DefaultFieldLabel},
			model.Field{Type: model.FieldTypeParam, Code: "Tail", Name: DefaultFieldLabel},
		}},
	}
	if diff := cmp.Diff(want, got.Structure); diff != "" {
		t.Fatalf("structure mismatch (-want +got):\n%s", diff)
	}
}

func TestStructure_DefaultLabels(t *testing.T) {
	tpl := act(`<Simple Code="A"><Section Code="S"></Section></Simple>`)

	got := New(Options{}).Structure(tpl, "", nil)

	want := []model.Node{
		model.Section{Name: DefaultBlockLabel, Children: []model.Node{
			model.Section{Name: DefaultSectionLabel, Children: []model.Node{}},
		}},
	}
	if diff := cmp.Diff(want, got.Structure); diff != "" {
		t.Fatalf("structure mismatch (-want +got):\n%s", diff)
	}

	custom := New(Options{BlockLabel: "Block", SectionLabel: "Section"}).Structure(tpl, "", nil)
	if custom.Structure[0].(model.Section).Name != "Block" {
		t.Fatalf("custom block label not applied: %+v", custom.Structure[0])
	}
}

func TestStructure_RecognisesEveryFieldType(t *testing.T) {
	var body strings.Builder
	for _, kind := range model.FieldTypes() {
		body.WriteString(`<` + string(kind) + ` Code="` + string(kind) + `">{?External(` + string(kind) + `)?}</` + string(kind) + `>`)
	}
	tpl := act(`<Simple Code="A"><Section>` + body.String() + `</Section></Simple>`)

	got := New(Options{}).Structure(tpl, "", nil)

	kinds := make([]model.FieldType, 0)
	for _, field := range model.Flatten(got.Structure) {
		kinds = append(kinds, field.Type)
	}
	if diff := cmp.Diff(model.FieldTypes(), kinds); diff != "" {
		t.Fatalf("field types mismatch (-want +got):\n%s", diff)
	}
}

func TestStructure_SkipsStaticAndCodelessParams(t *testing.T) {
	tpl := act(`<Simple Code="A"><Section>
<Param Code="Self" Name="x"/>
<ParamText Code="Static">fixed</ParamText>
<ParamText Name="NoCode">{?External(NoCode)?}</ParamText>
<ParamText Code="">{?External(Empty)?}</ParamText>
<ParamMemo Code="Memo">{?Editor(MemoAlias)?}</ParamMemo>
</Section></Simple>`)

	got := New(Options{}).Structure(tpl, "", nil)

	fields := model.Flatten(got.Structure)
	if len(fields) != 1 || fields[0].Code != "Memo" {
		t.Fatalf("expected only Memo field, got %+v", fields)
	}
	if diff := cmp.Diff(model.AliasMap{"Memo": "MemoAlias"}, got.AliasMap); diff != "" {
		t.Fatalf("alias map mismatch (-want +got):\n%s", diff)
	}
}

func TestStructure_SelectCodeResolution(t *testing.T) {
	tpl := act(`<Simple Code="A"><Section>
<ParamSelect Code="Own" Dictionary="D" CodeSelected="{?External(Sel)?}"><Param Code="{?Editor(Choice)?}">x</Param></ParamSelect>
<ParamSelect Code="Own2" Dictionary="D" CodeSelected="{?External(Sel)?}"><Param Code="1">x</Param></ParamSelect>
<ParamSelect Code="Own3" Dictionary="Missing">{?External(Text)?}</ParamSelect>
</Section></Simple>`)
	dict := `<xsl:template name="D">|1|One|</xsl:template>`

	got := New(Options{}).Structure(tpl, dict, nil)

	fields := model.Flatten(got.Structure)
	codes := make([]string, 0, len(fields))
	for _, field := range fields {
		codes = append(codes, field.Code)
	}
	if diff := cmp.Diff([]string{"Choice", "Sel", "Own3"}, codes); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.AliasMap{"Choice": "Choice", "Sel": "Sel"}, got.AliasMap); diff != "" {
		t.Fatalf("alias map mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.Option{{Value: "1", Label: "One"}}, fields[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if fields[2].Dictionary != "" || fields[2].Options != nil {
		t.Fatalf("unknown dictionary must not be attached: %+v", fields[2])
	}
}

func TestStructure_IgnoresOtherForms(t *testing.T) {
	tpl := `<Form Code="Other"><Simple Code="A"><Section><Param Code="A">{?External(A)?}</Param></Section></Simple></Form>`

	got := New(Options{}).Structure(tpl, "", nil)
	if len(got.Structure) != 0 || len(got.AliasMap) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}

	custom := New(Options{Forms: []string{"Other"}}).Structure(tpl, "", nil)
	if len(custom.Structure) != 1 {
		t.Fatalf("custom form list not honoured: %+v", custom)
	}
}

func TestStructure_TotalOverGarbage(t *testing.T) {
	inputs := []string{
		"",
		"not markup at all",
		`<Form Code="Act">`,
		`<Form Code="Act"><Simple Code="A"><Section><Param Code="X">{?External(`,
		strings.Repeat("<Section>", 50),
		`<Form Code="Act"><Simple Code="A"/></Form>`,
	}
	for _, input := range inputs {
		got := New(Options{}).Structure(input, input, nil)
		if got.Structure == nil || got.AliasMap == nil {
			t.Fatalf("expected non-nil empty collections for %q", input)
		}
	}
}
