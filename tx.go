package pgfrag

import (
	"context"

	"github.com/google/uuid"
)

/*
Tx is a transaction-scoped Queryable that can be committed or rolled back.
Implemented by `internal/driver.TxQueryable`, wrapping a `pgx.Tx`.
*/
type Tx interface {
	Queryable
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Transactor begins a Tx. Implemented by `internal/driver.PoolQueryable`,
// wrapping a `pgxpool.Pool`. Kept as its own small interface, rather than
// importing a pgx pool type directly, so the engine stays driver-agnostic
// per the Queryable contract.
type Transactor interface {
	Begin(ctx context.Context) (Tx, error)
}

// txIdentified decorates a Tx with a stable per-transaction id, the
// "conventional slot" `TransactionID` reads for telemetry tagging.
type txIdentified struct {
	Tx
	id string
}

func (self txIdentified) TransactionID() string { return self.id }

/*
WithTx begins a transaction on db, runs fn against a Queryable decorated
with a fresh transaction id, and commits on success or rolls back on error
or panic. This is the one piece of connection management the engine needs
in order to exercise the transaction-id telemetry tag described in
spec.md §4.8; it does not manage pooling, retries, or isolation levels.
*/
func WithTx(ctx context.Context, db Transactor, fn func(ctx context.Context, tx Queryable) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	decorated := txIdentified{Tx: tx, id: uuid.NewString()}

	defer func() {
		if recovered := recover(); recovered != nil {
			_ = tx.Rollback(ctx)
			panic(recovered)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	err = fn(ctx, decorated)
	return err
}
