package pgfrag

import (
	"fmt"
	"strconv"
)

// Count builds `SELECT count(*) AS result FROM table WHERE ...`, Numeric
// mode: the driver returns `int8` as text, so the result transform parses
// it to `float64`, accepting the resulting precision loss for very large
// counts.
func Count(table string, where any) Fragment {
	return aggregateFragment(`count(*)`, table, where)
}

// Sum/Avg/Min/Max build the corresponding single-column aggregate over
// `table` filtered by `where`.
func Sum(table, column string, where any) Fragment { return columnAggregate(`sum`, table, column, where) }
func Avg(table, column string, where any) Fragment { return columnAggregate(`avg`, table, column, where) }
func Min(table, column string, where any) Fragment { return columnAggregate(`min`, table, column, where) }
func Max(table, column string, where any) Fragment { return columnAggregate(`max`, table, column, where) }

func columnAggregate(fn, table, column string, where any) Fragment {
	expr := fn + `(` + QuoteIdent(column) + `)`
	return aggregateFragment(expr, table, where)
}

func aggregateFragment(selectExpr, table string, where any) Fragment {
	frag := F(`SELECT `, Raw(selectExpr), ` AS result FROM `, Ident(table), ` WHERE `, whereInterp(where))
	return frag.With(WithTransform(numericResultTransform))
}

func numericResultTransform(result QueryResult) (any, error) {
	if len(result.Rows) == 0 {
		return float64(0), nil
	}

	switch val := result.Rows[0][`result`].(type) {
	case nil:
		return float64(0), nil
	case string:
		num, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, ErrInvalidInput.while(`parsing numeric aggregate result`).because(err)
		}
		return num, nil
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int:
		return float64(val), nil
	default:
		return nil, ErrInvalidInput.while(`parsing numeric aggregate result`).because(
			fmt.Errorf(`unsupported numeric result type %T`, val))
	}
}
