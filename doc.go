/*
Package pgfrag is a typed SQL builder and result-shaping engine for
PostgreSQL. It is built around a single compositional value, `Fragment`:
literal SQL text interleaved with typed interpolations (identifiers,
parameters, nested fragments, column/value maps, predicate maps).

Fragments compile to parameterized SQL text plus a positional argument
vector via `Compile`, and execute against anything implementing `Queryable`
via `Run`. Shortcut builders (`Insert`, `Upsert`, `Update`, `Delete`,
`Truncate`, `Select`, `SelectOne`, `SelectExactlyOne`, `Count`, `Sum`, `Avg`,
`Min`, `Max`) assemble fragments for the common cases, including a
lateral-join strategy that lets one round trip return a nested JSON result
tree.

See the sibling package `internal/gen` for the schema-introspecting code
generator that produces per-table column and shape identifiers consumed by
callers of this package.
*/
package pgfrag
