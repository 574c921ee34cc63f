package pgfrag

import (
	"context"
	"fmt"
	"strconv"
)

// Query is the compiled output of a `Fragment`: parameterized SQL text,
// its positional argument vector, and the prepared-statement name if one
// was requested.
type Query struct {
	Text   string
	Values []any
	Name   string
}

type compileCtx struct {
	parentTable   string
	currentColumn string
	hasColumn     bool
}

func (self compileCtx) withColumn(col string) compileCtx {
	self.currentColumn = col
	self.hasColumn = true
	return self
}

/*
Compile lowers a Fragment tree to a `Query`, threading parent-table and
current-column context through nested fragments and allocating 1-based
`$k` placeholders in left-to-right order. Compile is referentially
transparent for a given fragment tree, given the starting state
`{text: "", values: []}`.
*/
func Compile(ctx context.Context, frag Fragment) (query Query, err error) {
	defer recoverErr(&err)

	cfg := ConfigFrom(ctx)
	var bui Bui
	textLen, valuesLen := estimateSize(frag)
	bui.Grow(textLen, valuesLen)
	compileFragment(&bui, frag, compileCtx{parentTable: frag.ParentTable}, cfg)

	return Query{Text: bui.String(), Values: bui.Values, Name: frag.Name}, nil
}

func compileFragment(bui *Bui, frag Fragment, ctx compileCtx, cfg Config) {
	if frag.ParentTable != "" {
		ctx.parentTable = frag.ParentTable
	}

	for i, lit := range frag.Lits {
		bui.Str(lit)
		if i < len(frag.Exprs) {
			compileInterp(bui, frag.Exprs[i], ctx, cfg)
		}
	}
}

func compileInterp(bui *Bui, interp Interp, ctx compileCtx, cfg Config) {
	switch val := interp.(type) {
	case Fragment:
		compileFragment(bui, val, ctx, cfg)

	case Ident:
		bui.Str(QuoteIdent(string(val)))

	case Raw:
		bui.Str(string(val))

	case InterpList:
		for _, item := range val {
			compileInterp(bui, item, ctx, cfg)
		}

	case Param:
		compileParam(bui, val, cfg)

	case defaultSentinel:
		bui.Str(`DEFAULT`)

	case selfSentinel:
		if !ctx.hasColumn {
			panic(ErrSelfWithoutColumn)
		}
		bui.Str(QuoteIdent(ctx.currentColumn))

	case ParentColumn:
		if ctx.parentTable == "" {
			panic(ErrParentWithoutTable)
		}
		col := val.Column
		if col == "" {
			if !ctx.hasColumn {
				panic(ErrSelfWithoutColumn.while(`resolving parent column reference`))
			}
			col = ctx.currentColumn
		}
		bui.Str(QuoteIdent(ctx.parentTable) + `.` + QuoteIdent(col))

	case ColumnNames:
		compileColumnNames(bui, val)

	case ColumnValues:
		compileColumnValues(bui, val, ctx, cfg)

	case PredicateMap:
		compilePredicateMap(bui, val, ctx, cfg)

	case allSentinel:
		bui.Str(`TRUE`)

	default:
		panic(ErrAlienExpression.because(fmt.Errorf(`unrecognized interpolation of type %T`, interp)))
	}
}

func compileParam(bui *Bui, param Param, cfg Config) {
	useJSON := param.JSONCast == jsonForce ||
		(param.JSONCast == jsonAuto && param.Type == "" && shouldAutoCastJSON(param.Value, cfg))

	value := param.Value
	castType := param.Type

	if useJSON {
		encoded, err := encodeJSONParam(value)
		if err != nil {
			panic(ErrInvalidInput.while(`json-encoding parameter`).because(err))
		}
		value = encoded
		castType = `json`
	}

	ord := bui.Arg(value)
	if castType != "" {
		bui.Str(`CAST($` + strconv.Itoa(ord) + ` AS "` + castType + `")`)
	} else {
		bui.Str(`$` + strconv.Itoa(ord))
	}
}

func compileColumnNames(bui *Bui, names ColumnNames) {
	cols := columnNameList(names.Value)
	for i, col := range cols {
		if i > 0 {
			bui.Str(`, `)
		}
		bui.Str(QuoteIdent(col))
	}
}

func compileColumnValues(bui *Bui, vals ColumnValues, ctx compileCtx, cfg Config) {
	keys, values := columnValueList(vals.Value)

	for i, value := range values {
		if i > 0 {
			bui.Str(`, `)
		}

		valCtx := ctx
		if keys != nil {
			valCtx = ctx.withColumn(keys[i])
		}

		if interp, ok := value.(Interp); ok {
			compileInterp(bui, interp, valCtx, cfg)
			continue
		}
		compileParam(bui, Param{Value: value}, cfg)
	}
}

func compilePredicateMap(bui *Bui, pred PredicateMap, ctx compileCtx, cfg Config) {
	keys := pred.sortedKeys()
	if len(keys) == 0 {
		bui.Str(`TRUE`)
		return
	}

	bui.Str(`(`)
	for i, key := range keys {
		if i > 0 {
			bui.Str(` AND `)
		}
		bui.Str(QuoteIdent(key))
		bui.Str(` = `)

		value := pred[key]
		valCtx := ctx.withColumn(key)
		if interp, ok := value.(Interp); ok {
			compileInterp(bui, interp, valCtx, cfg)
			continue
		}
		compileParam(bui, Param{Value: value}, cfg)
	}
	bui.Str(`)`)
}

/*
estimateSize walks a Fragment tree to pre-size Compile's Bui, mirroring the
teacher's own `bui.Grow(len(self.Source), dict.Len())` call in
`Prep.appendParametrized`: grow by what's already known about the shape of
the source (literal byte lengths are exact; everything else is a rough
per-node estimate) rather than letting repeated small appends reallocate.
*/
func estimateSize(frag Fragment) (textLen, valuesLen int) {
	for _, lit := range frag.Lits {
		textLen += len(lit)
	}
	for _, expr := range frag.Exprs {
		t, v := estimateInterpSize(expr)
		textLen += t
		valuesLen += v
	}
	return
}

func estimateInterpSize(interp Interp) (textLen, valuesLen int) {
	switch val := interp.(type) {
	case Fragment:
		return estimateSize(val)

	case Ident:
		return len(val) + 2, 0

	case Raw:
		return len(val), 0

	case InterpList:
		for _, item := range val {
			t, v := estimateInterpSize(item)
			textLen += t
			valuesLen += v
		}
		return

	case Param:
		return 24, 1

	case ColumnNames:
		return len(columnNameList(val.Value)) * 16, 0

	case ColumnValues:
		_, values := columnValueList(val.Value)
		return len(values) * 16, len(values)

	case PredicateMap:
		return len(val) * 32, len(val)

	default:
		return 8, 0
	}
}

// recoverErr converts a panic raised during compilation into an error,
// re-panicking if the recovered value isn't one (a programmer error, not
// a reportable condition). Mirrors the teacher's `(*Bui).CatchExprs`.
func recoverErr(err *error) {
	val := recover()
	if val == nil {
		return
	}
	if asErr, ok := val.(error); ok {
		*err = asErr
		return
	}
	panic(val)
}
