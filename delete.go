package pgfrag

// DeleteOptions configures `Delete`.
type DeleteOptions struct {
	Columns []string
	Extras  Extras
}

// Delete builds a `DELETE FROM table WHERE ... RETURNING ...` fragment.
// `where` follows the same rules as `Update`'s.
func Delete(table string, where any, opts DeleteOptions) Fragment {
	sel := withExtras(returningSelector(table, opts.Columns), opts.Extras)

	frag := F(
		`DELETE FROM `, Ident(table), ` WHERE `, whereInterp(where),
		` RETURNING `, sel, ` AS result`,
	)
	return frag.With(WithTransform(allRowsResultTransform))
}
