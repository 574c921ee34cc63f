package pgfrag

import (
	"context"
	"errors"
	"time"
)

/*
Queryable is the engine's sole dependency on a database client: anything
exposing `Query`. The reference implementations (`internal/driver`) wrap a
`pgxpool.Pool` and a `pgx.Tx`; tests use `internal/testdriver`'s
`MockQueryable`.
*/
type Queryable interface {
	Query(ctx context.Context, query Query) (QueryResult, error)
}

// QueryResult is what a `Queryable` returns: the raw rows, prior to any
// `ResultTransform`.
type QueryResult struct {
	Rows []map[string]any
}

/*
TxIdentified is the conventional slot a transaction-decorated `Queryable`
exposes so that `Run` can tag telemetry with a transaction id. Plain
connections/pools don't implement it; `WithTx` returns one that does.
*/
type TxIdentified interface {
	TransactionID() string
}

// TransactionID reads the conventional transaction-id slot off a
// Queryable, returning "" if it isn't decorated with one.
func TransactionID(queryable Queryable) string {
	if ident, ok := queryable.(TxIdentified); ok {
		return ident.TransactionID()
	}
	return ""
}

/*
Run compiles `frag`, sends it to `queryable`, and applies its
`ResultTransform`. If the fragment is a no-op and `force` is false, it
returns `frag.NoopResult` without touching the database (but still invokes
the result listener). Listener invocation and the no-op/force interaction
match spec.md §4.8/§8 scenario 2.

`ctx` is consulted for a `Config` override via `ConfigFrom`; absent one,
`DefaultConfig` applies.
*/
func Run(ctx context.Context, queryable Queryable, frag Fragment, force bool) (result any, err error) {
	cfg := ConfigFrom(ctx)

	query, err := Compile(ctx, frag)
	if err != nil {
		return nil, err
	}

	txID := TransactionID(queryable)
	if cfg.QueryListener != nil {
		cfg.QueryListener(ctx, query, txID)
	}

	if frag.Noop && !force {
		if cfg.ResultListener != nil {
			cfg.ResultListener(ctx, query, 0, nil)
		}
		return frag.NoopResult, nil
	}

	start := nowFunc()
	raw, queryErr := queryable.Query(ctx, query)
	elapsed := nowFunc().Sub(start)

	if queryErr != nil {
		wrapped := driverErr(queryErr)
		if cfg.ResultListener != nil {
			cfg.ResultListener(ctx, query, elapsed, wrapped)
		}
		return nil, wrapped
	}

	if frag.Transform != nil {
		result, err = frag.Transform(raw)
	} else {
		result = defaultResultTransform(raw)
	}

	if errors.Is(err, errNotExactlyOneMarker) {
		err = notExactlyOneErr(query)
	}

	if cfg.ResultListener != nil {
		cfg.ResultListener(ctx, query, elapsed, err)
	}
	return result, err
}

// nowFunc is indirected so tests can stub elapsed-time measurement.
var nowFunc = time.Now

// defaultResultTransform converts each row's snake_case keys to camelCase,
// matching spec.md §4.8's default transform for fragments that don't set
// one of their own (i.e. fragments built directly via `F`, rather than
// through a shortcut builder).
func defaultResultTransform(result QueryResult) any {
	rows := make([]map[string]any, len(result.Rows))
	for i, row := range result.Rows {
		converted := make(map[string]any, len(row))
		for key, val := range row {
			converted[snakeToCamel(key)] = val
		}
		rows[i] = converted
	}
	return rows
}

func snakeToCamel(str string) string {
	out := make([]byte, 0, len(str))
	upperNext := false
	for i := 0; i < len(str); i++ {
		char := str[i]
		if char == '_' {
			upperNext = true
			continue
		}
		if upperNext && char >= 'a' && char <= 'z' {
			char -= 'a' - 'A'
		}
		upperNext = false
		out = append(out, char)
	}
	return string(out)
}
