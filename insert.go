package pgfrag

import (
	"reflect"
	"sort"
)

// InsertOptions configures `Insert`. `Columns` restricts the returned JSON
// object to these keys (default: every column, via `to_jsonb`). `Extras`
// merges additional `{name: expr}` pairs into each returned row.
type InsertOptions struct {
	Columns []string
	Extras  Extras
}

/*
Insert builds an `INSERT INTO table (...) VALUES (...) RETURNING ...`
fragment. `rows` is either a single insertable (`map[string]any` or a
struct tagged with `db`) or a slice of insertables.

An empty slice produces a no-op fragment: unless `Run` is called with
`force`, it returns `[]` without a round trip; forced, it runs
`INSERT INTO t SELECT null WHERE false`, matching spec.md §8 scenario 2.
*/
func Insert(table string, rows any, opts InsertOptions) Fragment {
	rv := reflect.ValueOf(rows)
	if rv.Kind() == reflect.Slice {
		return insertMany(table, rv, opts)
	}
	return insertOne(table, rows, opts)
}

func insertOne(table string, row any, opts InsertOptions) Fragment {
	sel := withExtras(returningSelector(table, opts.Columns), opts.Extras)
	_, core := insertCoreOne(row)

	frag := F(`INSERT INTO `, Ident(table), ` `, core, ` RETURNING `, sel, ` AS result`)
	return frag.With(WithTransform(firstRowResultTransform))
}

func insertMany(table string, rv reflect.Value, opts InsertOptions) Fragment {
	if rv.Len() == 0 {
		return F(`INSERT INTO `, Ident(table), ` SELECT NULL WHERE FALSE`).With(
			WithNoop([]any{}),
		)
	}

	_, core := insertCoreMany(rv)
	sel := withExtras(returningSelector(table, opts.Columns), opts.Extras)

	frag := F(`INSERT INTO `, Ident(table), ` `, core, ` RETURNING `, sel, ` AS result`)
	return frag.With(WithTransform(allRowsResultTransform))
}

// insertCoreOne renders `(cols) VALUES (vals)` for a single insertable,
// returning the column set alongside (used by `Upsert` to compute the
// default update-column set).
func insertCoreOne(row any) ([]string, Fragment) {
	cols := columnNameList(row)
	return cols, F(`(`, ColumnNames{Value: row}, `) VALUES (`, ColumnValues{Value: row}, `)`)
}

// insertCoreMany renders `(cols) VALUES (row1), (row2), ...` for a slice of
// insertables, unioning keys across rows and filling absent ones with
// `DEFAULT`, per spec.md §4.3's array-form rule.
func insertCoreMany(rv reflect.Value) ([]string, Fragment) {
	n := rv.Len()

	rowMaps := make([]map[string]any, n)
	keySet := map[string]bool{}
	for i := 0; i < n; i++ {
		keys, values := columnValueList(rv.Index(i).Interface())
		row := make(map[string]any, len(keys))
		for j, key := range keys {
			row[key] = values[j]
			keySet[key] = true
		}
		rowMaps[i] = row
	}

	cols := make([]string, 0, len(keySet))
	for col := range keySet {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	parts := []any{`(`}
	for i, col := range cols {
		if i > 0 {
			parts = append(parts, `, `)
		}
		parts = append(parts, Ident(col))
	}
	parts = append(parts, `) VALUES `)

	for i, row := range rowMaps {
		if i > 0 {
			parts = append(parts, `, `)
		}
		parts = append(parts, `(`)
		for j, col := range cols {
			if j > 0 {
				parts = append(parts, `, `)
			}
			if val, ok := row[col]; ok {
				parts = append(parts, Val(val))
			} else {
				parts = append(parts, Default)
			}
		}
		parts = append(parts, `)`)
	}

	return cols, F(parts...)
}

func firstRowResultTransform(result QueryResult) (any, error) {
	if len(result.Rows) == 0 {
		return nil, nil
	}
	return result.Rows[0][`result`], nil
}

func allRowsResultTransform(result QueryResult) (any, error) {
	out := make([]any, len(result.Rows))
	for i, row := range result.Rows {
		out[i] = row[`result`]
	}
	return out, nil
}
