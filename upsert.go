package pgfrag

import (
	"reflect"
	"sort"
)

// ConflictTarget selects the `ON CONFLICT` rule for `Upsert`: either a
// column list (`ON CONFLICT (c1, c2)`) or a named unique constraint
// (`ON CONFLICT ON CONSTRAINT name`).
type ConflictTarget struct {
	Columns    []string
	Constraint string
}

// ConflictOn targets a column list.
func ConflictOn(cols ...string) ConflictTarget { return ConflictTarget{Columns: cols} }

// ConflictOnConstraint targets a named unique constraint.
func ConflictOnConstraint(name string) ConflictTarget {
	return ConflictTarget{Constraint: name}
}

func (self ConflictTarget) toFragment() Fragment {
	if self.Constraint != "" {
		return F(`ON CONSTRAINT `, Ident(self.Constraint))
	}
	parts := []any{`(`}
	for i, col := range self.Columns {
		if i > 0 {
			parts = append(parts, `, `)
		}
		parts = append(parts, Ident(col))
	}
	parts = append(parts, `)`)
	return F(parts...)
}

// ReportAction controls whether `Upsert`'s returned JSON includes a
// `$action` key reporting "INSERT" vs "UPDATE".
type ReportAction byte

const (
	ReportActionInclude  ReportAction = 0
	ReportActionSuppress ReportAction = 1
)

/*
UpsertOptions configures `Upsert`.

  - UpdateValues overrides specific columns' `ON CONFLICT DO UPDATE` values,
    taking precedence over `EXCLUDED.col` for the columns it names — the
    conservative resolution of the teacher's dead-assignment bug; see
    DESIGN.md.
  - UpdateColumns extends the update-column set beyond the keys of
    UpdateValues (duplicates are dropped, first-seen order preserved);
    defaults to every inserted column.
  - NoNullUpdateColumns lists columns where a NULL EXCLUDED value should
    fall back to the existing row's value instead of overwriting it.
    AllNoNullUpdateColumns applies that to every update column.
  - ReportAction controls the `$action` reporting key (default: included).
*/
type UpsertOptions struct {
	UpdateValues           map[string]any
	UpdateColumns          []string
	NoNullUpdateColumns    []string
	AllNoNullUpdateColumns bool
	ReportAction           ReportAction
	Columns                []string
	Extras                 Extras
}

// Upsert builds an `INSERT ... ON CONFLICT ... DO UPDATE/NOTHING
// RETURNING ...` fragment. An empty slice of rows delegates to `Insert`.
func Upsert(table string, rows any, conflict ConflictTarget, opts UpsertOptions) Fragment {
	rv := reflect.ValueOf(rows)
	if rv.Kind() == reflect.Slice && rv.Len() == 0 {
		return Insert(table, rows, InsertOptions{Columns: opts.Columns, Extras: opts.Extras})
	}

	var insertedCols []string
	var core Fragment
	if rv.Kind() == reflect.Slice {
		insertedCols, core = insertCoreMany(rv)
	} else {
		insertedCols, core = insertCoreOne(rows)
	}

	updateCols := upsertUpdateColumns(insertedCols, opts)

	var onConflict Fragment
	if len(updateCols) == 0 {
		onConflict = F(`ON CONFLICT `, conflict.toFragment(), ` DO NOTHING`)
	} else {
		setParts := []any{`ON CONFLICT `, conflict.toFragment(), ` DO UPDATE SET (`}
		for i, col := range updateCols {
			if i > 0 {
				setParts = append(setParts, `, `)
			}
			setParts = append(setParts, Ident(col))
		}
		setParts = append(setParts, `) = ROW(`)
		for i, col := range updateCols {
			if i > 0 {
				setParts = append(setParts, `, `)
			}
			setParts = append(setParts, upsertUpdateValue(table, col, isNoNullUpdateColumn(col, opts), opts))
		}
		setParts = append(setParts, `)`)
		onConflict = F(setParts...)
	}

	sel := returningSelector(table, opts.Columns)
	if opts.ReportAction != ReportActionSuppress {
		sel = F(
			sel, ` || jsonb_build_object('$action', CASE xmax WHEN 0 THEN `,
			Raw(`'INSERT'`), ` ELSE `, Raw(`'UPDATE'`), ` END)`,
		)
	}
	sel = withExtras(sel, opts.Extras)

	frag := F(
		`INSERT INTO `, Ident(table), ` `, core, ` `, onConflict,
		` RETURNING `, sel, ` AS result`,
	)

	transform := firstRowResultTransform
	if rv.Kind() == reflect.Slice {
		transform = allRowsResultTransform
	}
	return frag.With(WithTransform(transform))
}

// upsertUpdateValue renders the `ON CONFLICT DO UPDATE` value for one
// column: an explicit override from `UpdateValues` if present (overriding
// `EXCLUDED.col`, per DESIGN.md's resolution of the upsert dead-write
// bug), else a NULL-coalescing `CASE` if the column is in the
// no-null-update set, else a bare `EXCLUDED.col`.
func upsertUpdateValue(table, col string, noNull bool, opts UpsertOptions) Interp {
	if val, ok := opts.UpdateValues[col]; ok {
		if interp, ok := val.(Interp); ok {
			return interp
		}
		return Val(val)
	}

	if noNull {
		return F(
			`CASE WHEN EXCLUDED.`, Ident(col), ` IS NULL THEN `, Ident(table), `.`, Ident(col),
			` ELSE EXCLUDED.`, Ident(col), ` END`,
		)
	}

	return Raw(`EXCLUDED.` + QuoteIdent(col))
}

func upsertUpdateColumns(insertedCols []string, opts UpsertOptions) []string {
	seen := map[string]bool{}
	var out []string

	add := func(col string) {
		if !seen[col] {
			seen[col] = true
			out = append(out, col)
		}
	}

	for _, col := range opts.UpdateColumns {
		add(col)
	}
	updateValueKeys := make([]string, 0, len(opts.UpdateValues))
	for key := range opts.UpdateValues {
		updateValueKeys = append(updateValueKeys, key)
	}
	sort.Strings(updateValueKeys)
	for _, col := range updateValueKeys {
		add(col)
	}

	if len(out) == 0 {
		return insertedCols
	}
	return out
}

func isNoNullUpdateColumn(col string, opts UpsertOptions) bool {
	if opts.AllNoNullUpdateColumns {
		return true
	}
	for _, c := range opts.NoNullUpdateColumns {
		if c == col {
			return true
		}
	}
	return false
}
