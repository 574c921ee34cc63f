/*
Package testdriver provides a table-driven pgfrag.Queryable double, so the
execution wrapper and shortcut builders can be tested without a live
database.
*/
package testdriver

import (
	"context"

	"github.com/tidalfoundry/pgfrag"
)

// MockQueryable records every compiled query it receives and returns a
// canned result, consulted in call order. Calling it more times than
// `Results` has entries returns the last entry repeatedly.
type MockQueryable struct {
	Results []pgfrag.QueryResult
	Err     error

	Calls []pgfrag.Query
	id    string
}

// WithTransactionID returns a copy tagged with a transaction id, so tests
// can assert that `pgfrag.TransactionID` threads through correctly.
func (self MockQueryable) WithTransactionID(id string) MockQueryable {
	self.id = id
	return self
}

func (self MockQueryable) TransactionID() string { return self.id }

func (self *MockQueryable) Query(_ context.Context, query pgfrag.Query) (pgfrag.QueryResult, error) {
	self.Calls = append(self.Calls, query)
	if self.Err != nil {
		return pgfrag.QueryResult{}, self.Err
	}
	if len(self.Results) == 0 {
		return pgfrag.QueryResult{}, nil
	}
	idx := len(self.Calls) - 1
	if idx >= len(self.Results) {
		idx = len(self.Results) - 1
	}
	return self.Results[idx], nil
}
