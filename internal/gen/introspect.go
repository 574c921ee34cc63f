package gen

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

/*
Introspect queries pg_catalog for every table, column,
enum, and unique index in the given schemas. Grounded on the same
pg_namespace/pg_class/pg_attribute/pg_type/pg_enum join pattern used by
schema-introspecting generators elsewhere in the corpus (e.g.
qbloq-graphjin-agentico's DB discovery layer), run over a pgxpool.Pool — the
same driver the root package's internal/driver adapts for query execution.
*/
func Introspect(ctx context.Context, pool *pgxpool.Pool, schemas []string) (Catalog, error) {
	var cat Catalog

	tables, err := introspectTables(ctx, pool, schemas)
	if err != nil {
		return Catalog{}, fmt.Errorf(`introspecting tables: %w`, err)
	}
	cat.Tables = tables

	enums, err := introspectEnums(ctx, pool, schemas)
	if err != nil {
		return Catalog{}, fmt.Errorf(`introspecting enums: %w`, err)
	}
	cat.Enums = enums

	return cat, nil
}

func introspectTables(ctx context.Context, pool *pgxpool.Pool, schemas []string) ([]Table, error) {
	rows, err := pool.Query(ctx, `
		select
			n.nspname  as schema,
			c.relname  as table_name,
			c.reltuples::bigint as estimated_rows
		from pg_class c
		join pg_namespace n on n.oid = c.relnamespace
		where c.relkind = 'r' and n.nspname = any($1)
		order by n.nspname, c.relname
	`, schemas)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []Table
	for rows.Next() {
		var table Table
		if err := rows.Scan(&table.Schema, &table.Name, &table.EstimatedRows); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tables {
		cols, err := introspectColumns(ctx, pool, tables[i].Schema, tables[i].Name)
		if err != nil {
			return nil, err
		}
		tables[i].Columns = cols

		indexes, err := introspectUniqueIndexes(ctx, pool, tables[i].Schema, tables[i].Name)
		if err != nil {
			return nil, err
		}
		tables[i].UniqueIndexes = indexes
	}

	return tables, nil
}

func introspectColumns(ctx context.Context, pool *pgxpool.Pool, schema, table string) ([]Column, error) {
	rows, err := pool.Query(ctx, `
		select
			a.attname,
			format_type(a.atttypid, a.atttypmod),
			not a.attnotnull,
			a.atthasdef
		from pg_attribute a
		join pg_class c on c.oid = a.attrelid
		join pg_namespace n on n.oid = c.relnamespace
		where n.nspname = $1 and c.relname = $2 and a.attnum > 0 and not a.attisdropped
		order by a.attnum
	`, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Name, &col.SQLType, &col.Nullable, &col.HasDefault); err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

func introspectUniqueIndexes(ctx context.Context, pool *pgxpool.Pool, schema, table string) ([]UniqueIndex, error) {
	rows, err := pool.Query(ctx, `
		select
			ic.relname,
			array_agg(a.attname order by array_position(i.indkey, a.attnum))
		from pg_index i
		join pg_class ic on ic.oid = i.indexrelid
		join pg_class tc on tc.oid = i.indrelid
		join pg_namespace n on n.oid = tc.relnamespace
		join pg_attribute a on a.attrelid = tc.oid and a.attnum = any(i.indkey)
		where i.indisunique and n.nspname = $1 and tc.relname = $2
		group by ic.relname
	`, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexes []UniqueIndex
	for rows.Next() {
		var idx UniqueIndex
		if err := rows.Scan(&idx.Name, &idx.Columns); err != nil {
			return nil, err
		}
		indexes = append(indexes, idx)
	}
	return indexes, rows.Err()
}

func introspectEnums(ctx context.Context, pool *pgxpool.Pool, schemas []string) ([]Enum, error) {
	rows, err := pool.Query(ctx, `
		select
			n.nspname,
			t.typname,
			array_agg(e.enumlabel order by e.enumsortorder)
		from pg_type t
		join pg_enum e on e.enumtypid = t.oid
		join pg_namespace n on n.oid = t.typnamespace
		where n.nspname = any($1)
		group by n.nspname, t.typname
		order by n.nspname, t.typname
	`, schemas)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enums []Enum
	for rows.Next() {
		var enum Enum
		if err := rows.Scan(&enum.Schema, &enum.Name, &enum.Labels); err != nil {
			return nil, err
		}
		enums = append(enums, enum)
	}
	return enums, rows.Err()
}
