package pgfrag

import "sort"

/*
Interp is the closed sum of values a `Fragment` may interpolate. Every
variant below is defined in this package. `Val` coerces a loosely-typed Go
value into a member of this sum: an `Interp` passes through and any other
value, bare strings included, becomes a `Param`.
*/
type Interp interface {
	isInterp()
}

func (Fragment) isInterp()      {}
func (Ident) isInterp()         {}
func (Raw) isInterp()           {}
func (InterpList) isInterp()    {}
func (Param) isInterp()         {}
func (defaultSentinel) isInterp() {}
func (selfSentinel) isInterp()  {}
func (ParentColumn) isInterp()  {}
func (ColumnNames) isInterp()   {}
func (ColumnValues) isInterp()  {}
func (PredicateMap) isInterp()  {}
func (allSentinel) isInterp()   {}

// Identifier arm: quoted, dots split into `"a"."b"`, snake-cased per the
// casing policy. See `QuoteIdent`.
type Ident string

// Raw-string escape hatch: rendered verbatim, no escaping. Explicitly
// unsafe; callers are responsible for ensuring the text is not
// attacker-controlled.
type Raw string

// Array-of-expressions arm: concatenated with no separator.
type InterpList []Interp

/*
Typed parameter arm. `Type`, if non-empty, renders `CAST($k AS "Type")`.
`JSONCast` overrides the global auto-cast decision made from
`Config.CastMapParamsToJSON`/`CastSliceParamsToJSON`: `jsonForce` always
JSON-casts, `jsonDisable` never does, `jsonAuto` (the zero value) defers to
config.
*/
type Param struct {
	Value    any
	Type     string
	JSONCast jsonCastMode
}

type jsonCastMode byte

const (
	jsonAuto jsonCastMode = iota
	jsonForce
	jsonDisable
)

// Plain parameter, no cast directive: `$k`, or auto-JSON-cast per config if
// the value is a `map[string]any` or `[]any`. A value that already is an
// `Interp` is returned unchanged.
func Val(val any) Interp {
	switch val := val.(type) {
	case Interp:
		return val
	default:
		return Param{Value: val}
	}
}

// Parameter with an explicit SQL type cast: `CAST($k AS "typ")`.
func Cast(val any, typ string) Param {
	return Param{Value: val, Type: typ}
}

// Parameter forced to JSON-serialize and cast as `json`, regardless of
// config. The explicit wrapper the teacher's "plain object" detection was
// replaced with; see DESIGN.md.
func JSON(val any) Param {
	return Param{Value: val, JSONCast: jsonForce}
}

// Parameter forced to render as a plain `$k`, bypassing any auto-cast that
// config would otherwise apply.
func NoCast(val any) Param {
	return Param{Value: val, JSONCast: jsonDisable}
}

type defaultSentinel struct{}

// The `DEFAULT` SQL keyword.
var Default Interp = defaultSentinel{}

type selfSentinel struct{}

// Renders as the current column identifier. Errors with
// `ErrSelfWithoutColumn` if there is no column in context.
var Self Interp = selfSentinel{}

/*
Parent-column reference, valid only inside a lateral sub-query. Renders as
`"parent"."col"`, where `parent` is the ambient parent-table alias and `col`
is `.Column` if set, else the ambient current column. Errors with
`ErrParentWithoutTable` if there is no parent-table alias in context.
*/
type ParentColumn struct{ Column string }

// Shortcut for `ParentColumn{Column: col}`.
func Parent(col string) ParentColumn { return ParentColumn{Column: col} }

// Shortcut for `ParentColumn{}`, resolving to the ambient current column.
func ParentSelf() ParentColumn { return ParentColumn{} }

/*
ColumnNames renders the quoted, comma-separated column list for `.Value`,
which must be a `map[string]any`, a struct (traversed via `db` tags, see
`struct_shape.go`), or a `[]string`. For maps and structs, keys are sorted
ascending before rendering.
*/
type ColumnNames struct{ Value any }

/*
ColumnValues renders the comma-separated value list for `.Value`, in the
same sorted key order as `ColumnNames` would use for the same value. Each
value compiles as a nested fragment if it implements `Interp`, else as a
parameter.
*/
type ColumnValues struct{ Value any }

/*
PredicateMap renders `(col1 = v1 AND col2 = v2 ...)` in sorted-key order.
An empty map renders `TRUE`. Each right-hand side compiles as a nested
fragment if it implements `Interp`, else as a parameter.
*/
type PredicateMap map[string]any

func (self PredicateMap) sortedKeys() []string {
	keys := make([]string, 0, len(self))
	for key := range self {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type allSentinel struct{}

// Matches every row: used where `Select` expects a predicate but the
// caller wants no `WHERE` clause restriction.
var All Interp = allSentinel{}
