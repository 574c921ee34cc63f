package pgfrag

import "sort"

type selectMode byte

const (
	modeMany selectMode = iota
	modeOne
	modeExactlyOne
)

// LockWait controls `NOWAIT`/`SKIP LOCKED` for a `Lock` clause.
type LockWait byte

const (
	LockWaitBlock      LockWait = 0
	LockWaitNoWait     LockWait = 1
	LockWaitSkipLocked LockWait = 2
)

// Lock is one `FOR ... [OF ...] [NOWAIT|SKIP LOCKED]` row-locking clause.
// `For` is a raw keyword such as `UPDATE`, `NO KEY UPDATE`, `SHARE`, or
// `KEY SHARE` — validated by the caller, not user input.
type Lock struct {
	For string
	Of  []string
	Wait LockWait
}

func (self Lock) toFragment() Fragment {
	parts := []any{`FOR `, Raw(self.For)}
	if len(self.Of) > 0 {
		parts = append(parts, ` OF `)
		for i, table := range self.Of {
			if i > 0 {
				parts = append(parts, `, `)
			}
			parts = append(parts, Ident(table))
		}
	}
	switch self.Wait {
	case LockWaitNoWait:
		parts = append(parts, ` NOWAIT`)
	case LockWaitSkipLocked:
		parts = append(parts, ` SKIP LOCKED`)
	}
	return F(parts...)
}

// LateralMap splices each entry as `LEFT JOIN LATERAL (sub) AS
// "lateral_<key>" ON true`, folding `{key: result}` pairs (sorted by key)
// into the parent row's JSON object.
type LateralMap map[string]Fragment

// LateralSingle splices one sub-query whose result *replaces* the parent
// row's shape entirely, rather than augmenting it.
type LateralSingle struct{ Frag Fragment }

/*
SelectOptions configures `Select`/`SelectOne`/`SelectExactlyOne`. `Distinct`
accepts `nil`, `bool`, a single column name (`string`), or `[]string` for
`DISTINCT ON`. `Lateral` accepts `nil`, `LateralMap`, or `LateralSingle`.
*/
type SelectOptions struct {
	Distinct any
	Columns  []string
	Extras   Extras
	Order    Orders
	GroupBy  []string
	Having   any
	Limit    *int
	Offset   *int
	WithTies bool
	Alias    string
	Lock     []Lock
	Lateral  any
}

func (self SelectOptions) alias(table string) string {
	if self.Alias != "" {
		return self.Alias
	}
	return table
}

// Select returns a fragment whose result, in Many mode, is always a JSON
// array (possibly empty), never null: the inner tuple stream is wrapped in
// `coalesce(jsonb_agg(result), '[]')` after ORDER BY/LIMIT/OFFSET are
// applied to it.
func Select(table string, where any, opts SelectOptions) Fragment {
	return buildSelect(table, where, opts, modeMany)
}

// SelectOne returns at most one row (`LIMIT 1`), or nil if there is none.
func SelectOne(table string, where any, opts SelectOptions) Fragment {
	return buildSelect(table, where, opts, modeOne)
}

// SelectExactlyOne is like SelectOne, but its `ResultTransform` raises
// `NotExactlyOneErr` if the query returns no rows.
func SelectExactlyOne(table string, where any, opts SelectOptions) Fragment {
	return buildSelect(table, where, opts, modeExactlyOne)
}

func buildSelect(table string, where any, opts SelectOptions, mode selectMode) Fragment {
	alias := opts.alias(table)
	inner := buildInnerSelect(table, alias, where, opts)

	switch mode {
	case modeOne, modeExactlyOne:
		limited := inner
		if opts.Limit == nil {
			one := 1
			limited = buildInnerSelect(table, alias, where, withLimit(opts, &one))
		}
		transform := oneRowResultTransform
		if mode == modeExactlyOne {
			transform = exactlyOneRowResultTransform
		}
		return F(limited).With(WithTransform(transform))

	default:
		outer := F(
			`SELECT coalesce(jsonb_agg(result), '[]'::jsonb) AS result FROM (`,
			inner, `) AS `, Ident(`sq_`+alias),
		)
		return outer.With(WithTransform(jsonbArrayResultTransform))
	}
}

func withLimit(opts SelectOptions, limit *int) SelectOptions {
	opts.Limit = limit
	return opts
}

func buildInnerSelect(table, alias string, where any, opts SelectOptions) Fragment {
	rowSelector := withExtras(returningSelector(alias, opts.Columns), opts.Extras)
	lateralJoins, rowSelector := applyLateral(alias, rowSelector, opts.Lateral)

	parts := []any{`SELECT `}
	parts = append(parts, distinctClause(opts.Distinct)...)
	parts = append(parts, rowSelector, ` AS result FROM `, Ident(table), ` AS `, Ident(alias))
	parts = append(parts, lateralJoins...)
	parts = append(parts, ` WHERE `, whereInterp(where))

	if len(opts.GroupBy) > 0 {
		parts = append(parts, ` GROUP BY `)
		for i, col := range opts.GroupBy {
			if i > 0 {
				parts = append(parts, `, `)
			}
			parts = append(parts, Ident(col))
		}
	}

	if opts.Having != nil {
		parts = append(parts, ` HAVING `, whereInterp(opts.Having))
	}

	if !opts.Order.IsEmpty() {
		parts = append(parts, ` `, opts.Order.ToFragment())
	}

	parts = append(parts, paginationClause(opts)...)

	for _, lock := range opts.Lock {
		parts = append(parts, ` `, lock.toFragment())
	}

	return F(parts...)
}

func distinctClause(distinct any) []any {
	switch val := distinct.(type) {
	case nil:
		return nil
	case bool:
		if val {
			return []any{`DISTINCT `}
		}
		return nil
	case string:
		return []any{`DISTINCT ON (`, Ident(val), `) `}
	case []string:
		parts := []any{`DISTINCT ON (`}
		for i, col := range val {
			if i > 0 {
				parts = append(parts, `, `)
			}
			parts = append(parts, Ident(col))
		}
		return append(parts, `) `)
	default:
		return []any{`DISTINCT ON (`, Val(distinct), `) `}
	}
}

func paginationClause(opts SelectOptions) []any {
	var parts []any

	if opts.WithTies {
		if opts.Offset != nil {
			parts = append(parts, ` OFFSET `, Param{Value: *opts.Offset}, ` ROWS`)
		}
		if opts.Limit != nil {
			parts = append(parts, ` FETCH FIRST `, Param{Value: *opts.Limit}, ` ROWS WITH TIES`)
		}
		return parts
	}

	if opts.Limit != nil {
		parts = append(parts, ` LIMIT `, Param{Value: *opts.Limit})
	}
	if opts.Offset != nil {
		parts = append(parts, ` OFFSET `, Param{Value: *opts.Offset})
	}
	return parts
}

// applyLateral renders the `LEFT JOIN LATERAL` clauses and folds their
// results into `rowSelector`, per spec.md §4.7's lateral model.
func applyLateral(alias string, rowSelector Fragment, lateral any) (joins []any, result Fragment) {
	switch val := lateral.(type) {
	case nil:
		return nil, rowSelector

	case LateralSingle:
		name := `lateral_passthru`
		joins = append(joins, ` LEFT JOIN LATERAL (`, val.Frag.Splice(alias), `) AS `, Ident(name), ` ON TRUE`)
		return joins, F(Ident(name + `.result`))

	case LateralMap:
		keys := make([]string, 0, len(val))
		for key := range val {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		parts := []any{`jsonb_build_object(`}
		for i, key := range keys {
			name := `lateral_` + key
			joins = append(joins, ` LEFT JOIN LATERAL (`, val[key].Splice(alias), `) AS `, Ident(name), ` ON TRUE`)
			if i > 0 {
				parts = append(parts, `, `)
			}
			parts = append(parts, Raw(QuoteLiteral(key)), `, `, Ident(name+`.result`))
		}
		parts = append(parts, `)`)

		return joins, F(rowSelector, ` || `, F(parts...))

	default:
		return nil, rowSelector
	}
}

func oneRowResultTransform(result QueryResult) (any, error) {
	if len(result.Rows) == 0 {
		return nil, nil
	}
	return result.Rows[0][`result`], nil
}

func exactlyOneRowResultTransform(result QueryResult) (any, error) {
	if len(result.Rows) == 0 {
		return nil, errNotExactlyOneMarker
	}
	return result.Rows[0][`result`], nil
}

func jsonbArrayResultTransform(result QueryResult) (any, error) {
	if len(result.Rows) == 0 {
		return []any{}, nil
	}
	return result.Rows[0][`result`], nil
}
