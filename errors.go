package pgfrag

import (
	"errors"
	"fmt"
)

// Error codes for `Err`. Prefer `errors.Is` against the exported `Err*`
// sentinels rather than comparing codes directly.
type ErrCode string

const (
	ErrCodeUnknown            ErrCode = ""
	ErrCodeInvalidInput       ErrCode = "InvalidInput"
	ErrCodeAlienExpression    ErrCode = "AlienExpression"
	ErrCodeSelfWithoutColumn  ErrCode = "SelfWithoutColumn"
	ErrCodeParentWithoutTable ErrCode = "ParentWithoutTable"
	ErrCodeBadOrderDirection  ErrCode = "BadOrderDirection"
	ErrCodeBadOrderNulls      ErrCode = "BadOrderNulls"
	ErrCodeNotExactlyOne      ErrCode = "NotExactlyOne"
	ErrCodeDriver             ErrCode = "Driver"
	ErrCodeInternal           ErrCode = "Internal"
)

/*
Sentinels for `errors.Is`:

	if errors.Is(err, pgfrag.ErrParentWithoutTable) {
		// handle
	}

Errors returned by this package can't be compared with `==`, since they
carry additional context; `errors.Is` falls back on `.Code`.
*/
var (
	ErrInvalidInput       Err = Err{Code: ErrCodeInvalidInput, Cause: errors.New(`invalid input`)}
	ErrAlienExpression    Err = Err{Code: ErrCodeAlienExpression, Cause: errors.New(`interpolated value is not a recognized expression shape`)}
	ErrSelfWithoutColumn  Err = Err{Code: ErrCodeSelfWithoutColumn, Cause: errors.New(`"self" used outside a column-bound context`)}
	ErrParentWithoutTable Err = Err{Code: ErrCodeParentWithoutTable, Cause: errors.New(`parent-column reference outside a lateral sub-query`)}
	ErrBadOrderDirection  Err = Err{Code: ErrCodeBadOrderDirection, Cause: errors.New(`order direction must be asc or desc`)}
	ErrBadOrderNulls      Err = Err{Code: ErrCodeBadOrderNulls, Cause: errors.New(`order nulls placement must be first or last`)}
	ErrInternal           Err = Err{Code: ErrCodeInternal, Cause: errors.New(`internal error`)}
)

// Type of errors returned by this package, excluding `NotExactlyOneErr` and
// `DriverErr`, which wrap it but carry additional payload.
type Err struct {
	Code  ErrCode
	While string
	Cause error
}

func (self Err) Error() string {
	if self == (Err{}) {
		return ""
	}
	msg := `[pgfrag]`
	if self.Code != ErrCodeUnknown {
		msg += fmt.Sprintf(` %s`, self.Code)
	}
	if self.While != "" {
		msg += fmt.Sprintf(` while %v`, self.While)
	}
	if self.Cause != nil {
		msg += `: ` + self.Cause.Error()
	}
	return msg
}

func (self Err) Is(other error) bool {
	if self.Cause != nil && errors.Is(self.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	return ok && err.Code == self.Code
}

func (self Err) Unwrap() error { return self.Cause }

func (self Err) while(while string) Err {
	self.While = while
	return self
}

func (self Err) because(cause error) Err {
	self.Cause = cause
	return self
}

/*
Raised by `SelectExactlyOne` when the query returns zero rows. Carries the
compiled query for diagnosis, per the engine's fail-fast error policy.
*/
type NotExactlyOneErr struct {
	Err
	Query Query
}

// errNotExactlyOneMarker is raised by a ResultTransform, which has no
// access to the compiled Query; Run recognizes it and substitutes a real
// NotExactlyOneErr carrying the query it just compiled.
var errNotExactlyOneMarker = errors.New(`expected exactly one row, got none`)

func notExactlyOneErr(query Query) NotExactlyOneErr {
	return NotExactlyOneErr{
		Err:   Err{Code: ErrCodeNotExactlyOne, Cause: errors.New(`expected exactly one row, got none`)},
		Query: query,
	}
}

func (self NotExactlyOneErr) Error() string {
	return self.Err.Error() + fmt.Sprintf(` (query: %q, args: %v)`, self.Query.Text, self.Query.Values)
}

// Wraps whatever the `Queryable` returned, unchanged in substance, so that
// callers can distinguish driver failures from compilation failures via
// `errors.As`.
type DriverErr struct {
	Err
}

func driverErr(cause error) DriverErr {
	return DriverErr{Err{Code: ErrCodeDriver, While: `executing query`, Cause: cause}}
}

func (self DriverErr) Unwrap() error { return self.Err.Cause }
