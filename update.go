package pgfrag

// UpdateOptions configures `Update`.
type UpdateOptions struct {
	Columns []string
	Extras  Extras
}

/*
Update builds an `UPDATE table SET (...) = ROW(...) WHERE ... RETURNING
...` fragment. `set` is a `map[string]any`/struct of columns to assign.
`where` is either a `PredicateMap` or an arbitrary `Fragment`/`Interp`; `Val`
is applied if it's a bare value. The `ROW(...)` form is required even for a
single assigned column.
*/
func Update(table string, set any, where any, opts UpdateOptions) Fragment {
	sel := withExtras(returningSelector(table, opts.Columns), opts.Extras)

	whereInterp := whereInterp(where)

	frag := F(
		`UPDATE `, Ident(table), ` SET (`, ColumnNames{Value: set}, `) = ROW(`,
		ColumnValues{Value: set}, `) WHERE `, whereInterp, ` RETURNING `, sel, ` AS result`,
	)
	return frag.With(WithTransform(allRowsResultTransform))
}

func whereInterp(where any) Interp {
	if interp, ok := where.(Interp); ok {
		return interp
	}
	if dict, ok := where.(map[string]any); ok {
		return PredicateMap(dict)
	}
	return Val(where)
}
