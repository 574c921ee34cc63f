package pgfrag

import (
	"fmt"
	"strings"
)

// Direction is the ordering direction for an `OrderTerm`. The zero value
// renders as ascending, SQL's own default.
type Direction byte

const (
	Asc  Direction = 0
	Desc Direction = 1
)

// ParseDirection accepts "ASC"/"DESC" case-insensitively, and "" as `Asc`;
// anything else is `ErrBadOrderDirection`.
func ParseDirection(str string) (Direction, error) {
	switch strings.ToUpper(str) {
	case "", "ASC":
		return Asc, nil
	case "DESC":
		return Desc, nil
	default:
		return Asc, ErrBadOrderDirection.because(invalidOrderValue(`direction`, str))
	}
}

func (self Direction) String() string {
	if self == Desc {
		return `DESC`
	}
	return `ASC`
}

// Nulls is the nulls-placement for an `OrderTerm`.
type Nulls byte

const (
	NullsDefault Nulls = 0
	NullsFirst   Nulls = 1
	NullsLast    Nulls = 2
)

// ParseNulls accepts "", "FIRST", "LAST" case-insensitively; anything else
// is `ErrBadOrderNulls`.
func ParseNulls(str string) (Nulls, error) {
	switch strings.ToUpper(str) {
	case "":
		return NullsDefault, nil
	case "FIRST":
		return NullsFirst, nil
	case "LAST":
		return NullsLast, nil
	default:
		return NullsDefault, ErrBadOrderNulls.because(invalidOrderValue(`nulls placement`, str))
	}
}

func (self Nulls) String() string {
	switch self {
	case NullsFirst:
		return `NULLS FIRST`
	case NullsLast:
		return `NULLS LAST`
	default:
		return ``
	}
}

func invalidOrderValue(kind, val string) error {
	return Err{Code: ErrCodeInvalidInput, While: `parsing order ` + kind}.because(
		fmt.Errorf(`%q is not a valid order %s`, val, kind))
}

/*
OrderTerm is one element of an SQL `ORDER BY` clause: a column/expression
identifier, a direction, and an optional nulls placement.
*/
type OrderTerm struct {
	By        string
	Direction Direction
	Nulls     Nulls
}

// OrderAsc/OrderDesc are shortcuts for the common case of a plain column
// name with no explicit nulls placement.
func OrderAsc(by string) OrderTerm  { return OrderTerm{By: by, Direction: Asc} }
func OrderDesc(by string) OrderTerm { return OrderTerm{By: by, Direction: Desc} }

func (self OrderTerm) appendTo(bui *Bui) {
	bui.Str(QuoteIdent(self.By))
	bui.Str(` `)
	bui.Str(self.Direction.String())
	if self.Nulls != NullsDefault {
		bui.Str(` `)
		bui.Str(self.Nulls.String())
	}
}

// Orders is a sequence of `OrderTerm`. An empty `Orders` renders nothing
// (no `ORDER BY` clause at all).
type Orders []OrderTerm

func (self Orders) IsEmpty() bool { return len(self) == 0 }

// ToFragment renders `ORDER BY <term>, <term>, ...`, or an empty fragment
// if there are no terms. Direction/nulls keywords come from the validated
// enum, not user text, so they're safe to emit as literal SQL.
func (self Orders) ToFragment() Fragment {
	if self.IsEmpty() {
		return F(``)
	}

	var bui Bui
	bui.Str(`ORDER BY `)
	for i, term := range self {
		if i > 0 {
			bui.Str(`, `)
		}
		term.appendTo(&bui)
	}
	return F(bui.String())
}
