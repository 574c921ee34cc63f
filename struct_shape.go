package pgfrag

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/mitranim/refut"
)

/*
Struct-shape traversal for `ColumnNames`/`ColumnValues`/`PredicateMap` when
given a Go struct (typically one of the generator's emitted `Insertable`/
`Updatable`/`Whereable` shapes) rather than a `map[string]any`. Ported from
the teacher's `traverseStructDbFields` (`struct_cols.go`, `struct_args.go`),
keyed to the same `db` struct tag convention the generator emits.
*/
func traverseStructDbFields(input any, fun func(string, any)) {
	rval := reflect.ValueOf(input)
	rtype := refut.RtypeDeref(rval.Type())

	if rtype.Kind() != reflect.Struct {
		panic(ErrInvalidInput.while(`traversing struct for db fields`).because(
			fmt.Errorf(`expected struct, got %v`, rtype)))
	}

	if refut.IsRvalNil(rval) {
		return
	}

	err := refut.TraverseStructRval(rval, func(rval reflect.Value, sfield reflect.StructField, _ []int) error {
		name := refut.TagIdent(sfield.Tag.Get(TagNameDb))
		if name == "" {
			return nil
		}
		fun(name, rval.Interface())
		return nil
	})
	if err != nil {
		panic(err)
	}
}

const TagNameDb = `db`

// columnNameList resolves the column-identifier list for a `ColumnNames`
// value: already-ordered for a `[]string`, sorted-ascending for a map or a
// struct.
func columnNameList(val any) []string {
	switch val := val.(type) {
	case []string:
		return val
	case map[string]any:
		return sortedKeys(val)
	default:
		keys, _ := structKV(val)
		return keys
	}
}

// columnValueList resolves keys (nil for the positional array form) and
// values for a `ColumnValues` value, in the same sorted order
// `columnNameList` would use for the same underlying value.
func columnValueList(val any) (keys []string, values []any) {
	switch val := val.(type) {
	case []any:
		return nil, val
	case map[string]any:
		keys = sortedKeys(val)
		values = make([]any, len(keys))
		for i, key := range keys {
			values[i] = val[key]
		}
		return keys, values
	default:
		return structKV(val)
	}
}

func structKV(val any) (keys []string, values []any) {
	dict := map[string]any{}
	traverseStructDbFields(val, func(name string, value any) {
		dict[name] = value
	})
	keys = sortedKeys(dict)
	values = make([]any, len(keys))
	for i, key := range keys {
		values[i] = dict[key]
	}
	return keys, values
}

func sortedKeys(dict map[string]any) []string {
	keys := make([]string, 0, len(dict))
	for key := range dict {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
