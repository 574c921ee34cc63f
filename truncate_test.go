package pgfrag

import "testing"

func TestTruncate_plain(t *testing.T) {
	query := mustCompile(t, Truncate([]string{`widgets`}, IdentityUnset, ForeignKeysUnset))
	eq(t, `TRUNCATE "widgets"`, query.Text)
}

func TestTruncate_multipleTablesWithClauses(t *testing.T) {
	query := mustCompile(t, Truncate([]string{`widgets`, `gadgets`}, IdentityRestart, ForeignKeysCascade))
	eq(t, `TRUNCATE "widgets", "gadgets" RESTART IDENTITY CASCADE`, query.Text)
}
