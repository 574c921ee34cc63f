package gen

import (
	"strings"
	"testing"
)

func TestEmit_tableShapesAndColumnEnum(t *testing.T) {
	cat := Catalog{
		Tables: []Table{{
			Schema: `public`,
			Name:   `widgets`,
			Columns: []Column{
				{Name: `id`, SQLType: `int8`},
				{Name: `created_at`, SQLType: `timestamptz`},
				{Name: `label`, SQLType: `text`, Nullable: true},
			},
			UniqueIndexes: []UniqueIndex{{Name: `widgets_pkey`, Columns: []string{`id`}}},
		}},
	}

	var out strings.Builder
	if err := Emit(&out, cat, `model`, `run-1`); err != nil {
		t.Fatal(err)
	}
	src := out.String()

	mustContain(t, src, `package model`)
	mustContain(t, src, `"time"`)
	mustContain(t, src, `WidgetColumn = "id"`)
	mustContain(t, src, `WidgetUniqueIndex = "widgets_pkey"`)
	mustContain(t, src, `type WidgetSelectable struct`)
	mustContain(t, src, `CreatedAt time.Time`)
	mustContain(t, src, "`db:\"created_at\"`")
	// Insertable/Updatable/Whereable pointer-ify nullable columns.
	mustContain(t, src, `Label     *string`)
	mustContain(t, src, "`db:\"label\"`")
}

func TestEmit_headerCommentCarriesRunID(t *testing.T) {
	cat := Catalog{Tables: []Table{{Name: `widgets`, Columns: []Column{{Name: `id`, SQLType: `int8`}}}}}

	var out strings.Builder
	if err := Emit(&out, cat, `model`, `run-abc-123`); err != nil {
		t.Fatal(err)
	}
	mustContain(t, out.String(), `run-abc-123`)
}

func TestEmit_enumValues(t *testing.T) {
	cat := Catalog{Enums: []Enum{{Name: `status`, Labels: []string{`open`, `closed`}}}}

	var out strings.Builder
	if err := Emit(&out, cat, `model`, `run-1`); err != nil {
		t.Fatal(err)
	}
	src := out.String()

	mustContain(t, src, `StatusOpen   Status = "open"`)
	mustContain(t, src, `StatusValues = []Status{StatusOpen, StatusClosed}`)
}

func TestEmit_noTimeImportWhenUnused(t *testing.T) {
	cat := Catalog{Tables: []Table{{Name: `widgets`, Columns: []Column{{Name: `id`, SQLType: `int8`}}}}}

	var out strings.Builder
	if err := Emit(&out, cat, `model`, `run-1`); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), `"time"`) {
		t.Fatalf("expected no time import when no column uses time.Time")
	}
}

func TestSqlTypeToGo_arrayPrefix(t *testing.T) {
	eqGen(t, `[]any`, sqlTypeToGo(`_text`))
}

func mustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func eqGen(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected %#v, got %#v", expected, actual)
	}
}
