/*
Package driver adapts github.com/jackc/pgx/v5 to pgfrag.Queryable and
pgfrag.Transactor. Nothing in the root package imports pgx directly; this
package is the one place the dependency is exercised, keeping the engine
itself driver-agnostic per its Queryable contract.
*/
package driver

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tidalfoundry/pgfrag"
)

// PoolQueryable wraps a pgxpool.Pool as a pgfrag.Queryable and
// pgfrag.Transactor.
type PoolQueryable struct {
	Pool *pgxpool.Pool
}

func NewPool(pool *pgxpool.Pool) PoolQueryable { return PoolQueryable{Pool: pool} }

// Query runs the compiled query. An unnamed query (query.Name == "") goes
// through the pool's normal simple-protocol path. A named query is routed
// to a single acquired connection so `Prepare`+`Query` land on the same
// backend, letting pgx's statement cache reuse the server-side prepare on
// later calls with the same name.
func (self PoolQueryable) Query(ctx context.Context, query pgfrag.Query) (pgfrag.QueryResult, error) {
	if query.Name == "" {
		return runQuery(ctx, self.Pool, query)
	}
	conn, err := self.Pool.Acquire(ctx)
	if err != nil {
		return pgfrag.QueryResult{}, err
	}
	defer conn.Release()
	return runNamedQuery(ctx, conn.Conn(), query)
}

func (self PoolQueryable) Begin(ctx context.Context) (pgfrag.Tx, error) {
	tx, err := self.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return TxQueryable{Tx: tx}, nil
}

// TxQueryable wraps a pgx.Tx as a pgfrag.Tx.
type TxQueryable struct {
	Tx pgx.Tx
}

func (self TxQueryable) Query(ctx context.Context, query pgfrag.Query) (pgfrag.QueryResult, error) {
	if query.Name == "" {
		return runQuery(ctx, self.Tx, query)
	}
	return runNamedQuery(ctx, self.Tx.Conn(), query)
}

func (self TxQueryable) Commit(ctx context.Context) error   { return self.Tx.Commit(ctx) }
func (self TxQueryable) Rollback(ctx context.Context) error { return self.Tx.Rollback(ctx) }

// querier is the slice of the pgx.Tx/pgxpool.Pool API this package relies
// on, narrowed so runQuery works against either.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// namedQuerier additionally exposes Prepare, which only *pgx.Conn satisfies
// directly — pgxpool.Pool and pgx.Tx require acquiring the underlying
// connection first; see PoolQueryable.Query/TxQueryable.Query.
type namedQuerier interface {
	querier
	Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error)
}

func runQuery(ctx context.Context, q querier, query pgfrag.Query) (pgfrag.QueryResult, error) {
	return collectRows(q.Query(ctx, query.Text, query.Values...))
}

// runNamedQuery prepares query.Text under query.Name on conn before
// running it. pgx's connection-level statement cache recognizes the name
// on subsequent calls and skips re-parsing server-side.
func runNamedQuery(ctx context.Context, conn namedQuerier, query pgfrag.Query) (pgfrag.QueryResult, error) {
	if _, err := conn.Prepare(ctx, query.Name, query.Text); err != nil {
		return pgfrag.QueryResult{}, err
	}
	return collectRows(conn.Query(ctx, query.Name, query.Values...))
}

func collectRows(rows pgx.Rows, err error) (pgfrag.QueryResult, error) {
	if err != nil {
		return pgfrag.QueryResult{}, err
	}
	defer rows.Close()

	var result pgfrag.QueryResult
	fields := rows.FieldDescriptions()

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return pgfrag.QueryResult{}, err
		}

		row := make(map[string]any, len(fields))
		for i, field := range fields {
			row[string(field.Name)] = values[i]
		}
		result.Rows = append(result.Rows, row)
	}

	return result, rows.Err()
}
