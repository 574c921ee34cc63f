package pgfrag

import "testing"

func TestUpsert_defaultUpdateColumnsAndAction(t *testing.T) {
	frag := Upsert(`widgets`, map[string]any{`id`: 1, `name`: `a`}, ConflictOn(`id`), UpsertOptions{})
	query := mustCompile(t, frag)
	eq(t,
		`INSERT INTO "widgets" ("id", "name") VALUES ($1, $2) ON CONFLICT ("id") DO UPDATE SET `+
			`("id", "name") = ROW(EXCLUDED."id", EXCLUDED."name") RETURNING to_jsonb("widgets".*) || `+
			`jsonb_build_object('$action', CASE xmax WHEN 0 THEN 'INSERT' ELSE 'UPDATE' END) AS result`,
		query.Text)
	eq(t, []any{1, `a`}, query.Values)
}

func TestUpsert_noNullUpdateColumn(t *testing.T) {
	frag := Upsert(`widgets`, map[string]any{`id`: 1, `name`: `a`}, ConflictOn(`id`),
		UpsertOptions{NoNullUpdateColumns: []string{`name`}, ReportAction: ReportActionSuppress})
	query := mustCompile(t, frag)
	eq(t,
		`INSERT INTO "widgets" ("id", "name") VALUES ($1, $2) ON CONFLICT ("id") DO UPDATE SET `+
			`("id", "name") = ROW(EXCLUDED."id", CASE WHEN EXCLUDED."name" IS NULL THEN "widgets"."name" `+
			`ELSE EXCLUDED."name" END) RETURNING to_jsonb("widgets".*) AS result`,
		query.Text)
}

func TestUpsert_explicitUpdateValueOverridesExcluded(t *testing.T) {
	// UpdateValues alone narrows the update-column set to its own keys,
	// unless UpdateColumns also names others; see upsertUpdateColumns.
	frag := Upsert(`widgets`, map[string]any{`id`: 1, `name`: `a`}, ConflictOn(`id`),
		UpsertOptions{UpdateValues: map[string]any{`name`: Raw(`'fixed'`)}, ReportAction: ReportActionSuppress})
	query := mustCompile(t, frag)
	eq(t,
		`INSERT INTO "widgets" ("id", "name") VALUES ($1, $2) ON CONFLICT ("id") DO UPDATE SET `+
			`("name") = ROW('fixed') RETURNING to_jsonb("widgets".*) AS result`,
		query.Text)
}

func TestUpsert_updateColumnsExtendsBeyondUpdateValues(t *testing.T) {
	frag := Upsert(`widgets`, map[string]any{`id`: 1, `name`: `a`}, ConflictOn(`id`),
		UpsertOptions{
			UpdateColumns: []string{`name`},
			UpdateValues:  map[string]any{`id`: Raw(`widgets.id`)},
			ReportAction:  ReportActionSuppress,
		})
	query := mustCompile(t, frag)
	eq(t,
		`INSERT INTO "widgets" ("id", "name") VALUES ($1, $2) ON CONFLICT ("id") DO UPDATE SET `+
			`("name", "id") = ROW(EXCLUDED."name", widgets.id) RETURNING to_jsonb("widgets".*) AS result`,
		query.Text)
}

func TestUpsert_namedConstraintTarget(t *testing.T) {
	frag := Upsert(`widgets`, map[string]any{`id`: 1}, ConflictOnConstraint(`widgets_pkey`),
		UpsertOptions{ReportAction: ReportActionSuppress})
	query := mustCompile(t, frag)
	eq(t,
		`INSERT INTO "widgets" ("id") VALUES ($1) ON CONFLICT ON CONSTRAINT "widgets_pkey" DO UPDATE SET `+
			`("id") = ROW(EXCLUDED."id") RETURNING to_jsonb("widgets".*) AS result`,
		query.Text)
}

func TestUpsert_emptySliceDelegatesToInsert(t *testing.T) {
	frag := Upsert(`widgets`, []map[string]any{}, ConflictOn(`id`), UpsertOptions{})
	if !frag.Noop {
		t.Fatalf("expected empty-slice upsert to be a noop insert")
	}
}
