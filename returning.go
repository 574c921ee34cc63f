package pgfrag

import "sort"

// Extras is a set of additional `{name: expr}` pairs merged into a row's
// JSON object by insert/upsert/select shortcuts, in sorted-key order.
type Extras map[string]Interp

func (self Extras) sortedKeys() []string {
	keys := make([]string, 0, len(self))
	for key := range self {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

/*
returningSelector builds the row-shaping expression for a RETURNING/SELECT
clause: `to_jsonb(alias.*)` if no columns were specified, else
`jsonb_build_object(CAST($1 AS "text"), "alias"."col1", CAST($2 AS "text"),
"alias"."col2", ...)` for a
restricted column list. Column names cross into SQL only as quoted
identifiers or as parameters, never as raw text.
*/
func returningSelector(alias string, columns []string) Fragment {
	if len(columns) == 0 {
		return F(`to_jsonb(`, Ident(alias), `.*)`)
	}

	parts := []any{`jsonb_build_object(`}
	for i, col := range columns {
		if i > 0 {
			parts = append(parts, `, `)
		}
		parts = append(parts, Cast(col, `text`), `, `, Ident(alias+`.`+col))
	}
	parts = append(parts, `)`)
	return F(parts...)
}

// withExtras merges `extras` into `sel` via `||`, in sorted-key order. Keys
// are parameterized as text, matching `returningSelector`'s treatment of
// column names.
func withExtras(sel Fragment, extras Extras) Fragment {
	if len(extras) == 0 {
		return sel
	}

	keys := extras.sortedKeys()
	parts := []any{sel, ` || jsonb_build_object(`}
	for i, key := range keys {
		if i > 0 {
			parts = append(parts, `, `)
		}
		parts = append(parts, Cast(key, `text`), `, `, extras[key])
	}
	parts = append(parts, `)`)
	return F(parts...)
}
