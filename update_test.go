package pgfrag

import "testing"

func TestUpdate_rowFormEvenForOneColumn(t *testing.T) {
	frag := Update(`widgets`, map[string]any{`name`: `new`}, PredicateMap{`id`: 1}, UpdateOptions{})
	query := mustCompile(t, frag)
	eq(t,
		`UPDATE "widgets" SET ("name") = ROW($1) WHERE ("id" = $2) RETURNING to_jsonb("widgets".*) AS result`,
		query.Text)
	eq(t, []any{`new`, 1}, query.Values)
}

func TestUpdate_whereAcceptsRawInterpAsIs(t *testing.T) {
	// whereInterp treats a raw Fragment/Interp as-is; a bare map becomes a
	// PredicateMap, and anything else is parameterized directly (so callers
	// almost always pass a PredicateMap or a hand-built Fragment).
	frag := Update(`widgets`, map[string]any{`name`: `new`}, Raw(`TRUE`), UpdateOptions{})
	query := mustCompile(t, frag)
	eq(t,
		`UPDATE "widgets" SET ("name") = ROW($1) WHERE TRUE RETURNING to_jsonb("widgets".*) AS result`,
		query.Text)
}
