package pgfrag

/*
ResultTransform converts a raw `QueryResult` (the rows the driver returned,
already run through `Compile`'s query) into the shape a caller of `Run`
actually wants — e.g. unwrapping a single `result` column, or converting
`int8` text into a `float64`. Set at fragment-construction time by the
shortcut builders; read-only afterward. This replaces the teacher's
post-hoc field mutation with a constructor argument.
*/
type ResultTransform func(QueryResult) (any, error)

/*
Fragment is the compositional unit of this package: literal SQL text
interleaved with typed interpolations. `Lits` always has exactly
`len(Exprs)+1` elements; the rendered text is
`Lits[0] + render(Exprs[0]) + Lits[1] + ... + render(Exprs[n-1]) + Lits[n]`.

Fragments are immutable in intent. `With` returns a modified copy; the
engine itself never mutates a `Fragment` after a shortcut builder hands it
to caller code.
*/
type Fragment struct {
	Lits  []string
	Exprs []Interp

	// Name, if set, requests a named prepared statement.
	Name string

	// ParentTable, if set, is the outer alias visible to `ParentColumn`
	// interpolations nested inside this fragment — set when this fragment is
	// spliced as a lateral sub-query.
	ParentTable string

	// Noop and NoopResult let a degenerate shortcut (e.g. insert of an empty
	// slice) skip the round trip to the database. See `Run`.
	Noop       bool
	NoopResult any

	Transform ResultTransform
}

// F builds a Fragment from a mix of literal strings and interpolations.
// Consecutive string arguments accumulate into one literal segment; any
// other argument must satisfy `Interp` (use `Val` to coerce loosely-typed
// values first).
//
//	F(`select * from `, Ident(`users`), ` where `, PredicateMap{`id`: 1})
func F(parts ...any) Fragment {
	var frag Fragment
	var lit string
	started := false

	for _, part := range parts {
		if str, ok := part.(string); ok {
			lit += str
			started = true
			continue
		}

		interp, ok := part.(Interp)
		if !ok {
			panic(ErrAlienExpression.while(`building fragment`))
		}

		frag.Lits = append(frag.Lits, lit)
		frag.Exprs = append(frag.Exprs, interp)
		lit = ""
		started = true
	}

	if started || len(frag.Lits) == 0 {
		frag.Lits = append(frag.Lits, lit)
	}
	return frag
}

// FragOption mutates a copy of a Fragment inside `With`.
type FragOption func(*Fragment)

// WithName requests a named prepared statement.
func WithName(name string) FragOption {
	return func(f *Fragment) { f.Name = name }
}

// WithParentTable sets the ambient parent-table alias for nested
// `ParentColumn` interpolations, used when splicing a lateral sub-query.
func WithParentTable(table string) FragOption {
	return func(f *Fragment) { f.ParentTable = table }
}

// WithNoop marks the fragment as skippable absent `force`, supplying the
// synthetic result to return instead of querying.
func WithNoop(result any) FragOption {
	return func(f *Fragment) {
		f.Noop = true
		f.NoopResult = result
	}
}

// WithTransform sets the fragment's result transform.
func WithTransform(fn ResultTransform) FragOption {
	return func(f *Fragment) { f.Transform = fn }
}

// With returns a copy of the fragment with the given options applied. The
// receiver is never mutated.
func (self Fragment) With(opts ...FragOption) Fragment {
	out := self
	out.Lits = append([]string(nil), self.Lits...)
	out.Exprs = append([]Interp(nil), self.Exprs...)
	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}
	return out
}

// Splice returns a copy of the fragment for use as a lateral sub-query: its
// `ParentTable` is set to `outerAlias`, so that `ParentColumn`
// interpolations nested inside it resolve against the outer row.
func (self Fragment) Splice(outerAlias string) Fragment {
	return self.With(WithParentTable(outerAlias))
}
