package pgfrag

import (
	"context"
	"errors"
	"testing"
)

func mustCompile(t *testing.T, frag Fragment) Query {
	t.Helper()
	query, err := Compile(context.Background(), frag)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	return query
}

func TestCompile_literalOnly(t *testing.T) {
	query := mustCompile(t, F(`select 1`))
	eq(t, `select 1`, query.Text)
	eq(t, 0, len(query.Values))
}

func TestCompile_identAndParam(t *testing.T) {
	query := mustCompile(t, F(`select * from `, Ident(`users`), ` where `, Ident(`id`), ` = `, Val(1)))
	eq(t, `select * from "users" where "id" = $1`, query.Text)
	eq(t, 1, len(query.Values))
	eq(t, 1, query.Values[0])
}

func TestCompile_multipleParamsOrdinal(t *testing.T) {
	query := mustCompile(t, F(`select `, Val(`a`), `, `, Val(`b`), `, `, Val(`c`)))
	eq(t, `select $1, $2, $3`, query.Text)
	eq(t, []any{`a`, `b`, `c`}, query.Values)
}

func TestCompile_raw(t *testing.T) {
	query := mustCompile(t, F(`select * from users `, Raw(`for update skip locked`)))
	eq(t, `select * from users for update skip locked`, query.Text)
}

func TestCompile_interpList(t *testing.T) {
	frag := F(``, InterpList{Ident(`a`), Raw(` `), Ident(`b`)})
	query := mustCompile(t, frag)
	eq(t, `"a" "b"`, query.Text)
}

func TestCompile_castParam(t *testing.T) {
	query := mustCompile(t, F(`select `, Cast(5, `bigint`)))
	eq(t, `select CAST($1 AS "bigint")`, query.Text)
}

func TestCompile_jsonParam(t *testing.T) {
	query := mustCompile(t, F(`select `, JSON(map[string]any{`a`: 1})))
	eq(t, `select CAST($1 AS "json")`, query.Text)
	eq(t, 1, len(query.Values))
	eq(t, `{"a":1}`, query.Values[0])
}

func TestCompile_noCastBypassesAutoJSON(t *testing.T) {
	query := mustCompile(t, F(`select `, NoCast(map[string]any{`a`: 1})))
	eq(t, `select $1`, query.Text)
}

func TestCompile_default(t *testing.T) {
	query := mustCompile(t, F(`insert into t values (`, Default, `)`))
	eq(t, `insert into t values (DEFAULT)`, query.Text)
}

func TestCompile_all(t *testing.T) {
	query := mustCompile(t, F(`where `, All))
	eq(t, `where TRUE`, query.Text)
}

func TestCompile_selfWithoutColumnErrors(t *testing.T) {
	_, err := Compile(context.Background(), F(`select `, Self))
	if !errors.Is(err, ErrSelfWithoutColumn) {
		t.Fatalf("expected ErrSelfWithoutColumn, got %v", err)
	}
}

func TestCompile_selfInsideColumnValues(t *testing.T) {
	frag := F(`update t set `, ColumnValues{Value: map[string]any{`touched_at`: Self}})
	// Self has no meaning without an update-target column being the same
	// name; here it resolves against the ambient key "touched_at".
	query := mustCompile(t, frag)
	eq(t, `update t set "touched_at"`, query.Text)
}

func TestCompile_parentColumnWithoutTableErrors(t *testing.T) {
	_, err := Compile(context.Background(), F(`select `, Parent(`id`)))
	if !errors.Is(err, ErrParentWithoutTable) {
		t.Fatalf("expected ErrParentWithoutTable, got %v", err)
	}
}

func TestCompile_parentColumnResolves(t *testing.T) {
	inner := F(`select `, Parent(`id`)).Splice(`outer`)
	query := mustCompile(t, inner)
	eq(t, `select "outer"."id"`, query.Text)
}

func TestCompile_columnNamesFromMap(t *testing.T) {
	query := mustCompile(t, F(``, ColumnNames{Value: map[string]any{`b`: 1, `a`: 2}}))
	eq(t, `"a", "b"`, query.Text)
}

func TestCompile_columnNamesFromSlice(t *testing.T) {
	query := mustCompile(t, F(``, ColumnNames{Value: []string{`z`, `a`}}))
	eq(t, `"z", "a"`, query.Text)
}

func TestCompile_columnValuesSortedByKey(t *testing.T) {
	query := mustCompile(t, F(``, ColumnValues{Value: map[string]any{`b`: 2, `a`: 1}}))
	eq(t, `$1, $2`, query.Text)
	eq(t, []any{1, 2}, query.Values)
}

func TestCompile_predicateMapEmptyIsTrue(t *testing.T) {
	query := mustCompile(t, F(`where `, PredicateMap{}))
	eq(t, `where TRUE`, query.Text)
}

func TestCompile_predicateMapSortedAnd(t *testing.T) {
	query := mustCompile(t, F(`where `, PredicateMap{`b`: 2, `a`: 1}))
	eq(t, `where ("a" = $1 AND "b" = $2)`, query.Text)
}

func TestCompile_alienExpressionPanicsAtBuildTime(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected F() to panic on a non-Interp, non-string argument")
		}
	}()
	F(`select `, 5)
}
