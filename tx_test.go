package pgfrag_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tidalfoundry/pgfrag"
)

type fakeTx struct {
	committed, rolledBack bool
}

func (self *fakeTx) Query(context.Context, pgfrag.Query) (pgfrag.QueryResult, error) {
	return pgfrag.QueryResult{}, nil
}
func (self *fakeTx) Commit(context.Context) error   { self.committed = true; return nil }
func (self *fakeTx) Rollback(context.Context) error { self.rolledBack = true; return nil }

type fakeTransactor struct{ tx *fakeTx }

func (self fakeTransactor) Begin(context.Context) (pgfrag.Tx, error) { return self.tx, nil }

func TestWithTx_commitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	err := pgfrag.WithTx(context.Background(), fakeTransactor{tx: tx}, func(ctx context.Context, q pgfrag.Queryable) error {
		if pgfrag.TransactionID(q) == "" {
			t.Fatalf("expected a non-empty transaction id inside WithTx")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !tx.committed || tx.rolledBack {
		t.Fatalf("expected commit without rollback, got committed=%v rolledBack=%v", tx.committed, tx.rolledBack)
	}
}

func TestWithTx_rollsBackOnError(t *testing.T) {
	tx := &fakeTx{}
	wantErr := errors.New(`boom`)
	err := pgfrag.WithTx(context.Background(), fakeTransactor{tx: tx}, func(context.Context, pgfrag.Queryable) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the callback's error to propagate, got %v", err)
	}
	if tx.committed || !tx.rolledBack {
		t.Fatalf("expected rollback without commit, got committed=%v rolledBack=%v", tx.committed, tx.rolledBack)
	}
}

func TestWithTx_rollsBackOnPanic(t *testing.T) {
	tx := &fakeTx{}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected the panic to propagate after rollback")
		}
		if tx.committed || !tx.rolledBack {
			t.Fatalf("expected rollback without commit, got committed=%v rolledBack=%v", tx.committed, tx.rolledBack)
		}
	}()

	_ = pgfrag.WithTx(context.Background(), fakeTransactor{tx: tx}, func(context.Context, pgfrag.Queryable) error {
		panic(`boom`)
	})
}
