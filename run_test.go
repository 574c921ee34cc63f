package pgfrag_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tidalfoundry/pgfrag"
	"github.com/tidalfoundry/pgfrag/internal/testdriver"
)

func TestRun_appliesDefaultTransform(t *testing.T) {
	mock := &testdriver.MockQueryable{
		Results: []pgfrag.QueryResult{{Rows: []map[string]any{{`user_id`: 1}}}},
	}

	result, err := pgfrag.Run(context.Background(), mock, pgfrag.F(`select 1`), false)
	if err != nil {
		t.Fatal(err)
	}

	rows, ok := result.([]map[string]any)
	if !ok || len(rows) != 1 || rows[0][`userId`] != 1 {
		t.Fatalf("expected camelCased rows, got %#v", result)
	}
}

func TestRun_noopSkipsQueryUnlessForced(t *testing.T) {
	mock := &testdriver.MockQueryable{}
	frag := pgfrag.F(`insert into t default values`).With(pgfrag.WithNoop(`sentinel`))

	result, err := pgfrag.Run(context.Background(), mock, frag, false)
	if err != nil {
		t.Fatal(err)
	}
	eqRun(t, `sentinel`, result)
	eqRun(t, 0, len(mock.Calls))

	_, err = pgfrag.Run(context.Background(), mock, frag, true)
	if err != nil {
		t.Fatal(err)
	}
	eqRun(t, 1, len(mock.Calls))
}

func TestRun_wrapsDriverError(t *testing.T) {
	mock := &testdriver.MockQueryable{Err: errors.New(`connection reset`)}

	_, err := pgfrag.Run(context.Background(), mock, pgfrag.F(`select 1`), false)

	var driverErr pgfrag.DriverErr
	if !errors.As(err, &driverErr) {
		t.Fatalf("expected DriverErr, got %v", err)
	}
}

func TestRun_threadsTransactionID(t *testing.T) {
	mock := testdriver.MockQueryable{}.WithTransactionID(`tx-1`)
	eqRun(t, `tx-1`, pgfrag.TransactionID(&mock))
}

func eqRun(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected %#v, got %#v", expected, actual)
	}
}
