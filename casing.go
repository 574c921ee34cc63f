package pgfrag

import (
	"strings"

	"github.com/ettle/strcase"
)

/*
Quotes a table/column identifier for safe inclusion in SQL text, per the
identifier-handling policy:

  - already-quoted (begins and ends with `"`) strings pass through unchanged;
  - otherwise, if any segment contains an uppercase ASCII byte anywhere in the
    whole dotted path, every segment is snake-cased before quoting;
  - otherwise, each dot-separated segment is quoted and rejoined with `.`.

The uppercase trigger is whole-identifier, not per-segment: `"Foo".bar`
snake-cases `bar` too, even though `bar` alone has no uppercase byte. This
mirrors a faithfully-kept, slightly surprising behavior of the identifier
transform; see DESIGN.md.
*/
func QuoteIdent(ident string) string {
	if isPreQuoted(ident) {
		return ident
	}

	segments := strings.Split(ident, ".")
	if hasUpperASCII(ident) {
		for i, seg := range segments {
			segments[i] = strcase.ToSnake(seg)
		}
	}

	for i, seg := range segments {
		segments[i] = quoteSegment(seg)
	}
	return strings.Join(segments, ".")
}

// QuoteLiteral renders str as a single-quoted SQL string literal, doubling
// any embedded quotes. Used for JSON keys (the lateral-map keys in `Select`)
// that must reach the compiled text verbatim rather than as a bound
// parameter.
func QuoteLiteral(str string) string {
	var buf strings.Builder
	buf.Grow(len(str) + 2)
	buf.WriteByte('\'')
	buf.WriteString(strings.ReplaceAll(str, `'`, `''`))
	buf.WriteByte('\'')
	return buf.String()
}

func isPreQuoted(ident string) bool {
	return len(ident) >= 2 && ident[0] == '"' && ident[len(ident)-1] == '"'
}

func hasUpperASCII(str string) bool {
	for i := 0; i < len(str); i++ {
		char := str[i]
		if char >= 'A' && char <= 'Z' {
			return true
		}
	}
	return false
}

func quoteSegment(seg string) string {
	var buf strings.Builder
	buf.Grow(len(seg) + 2)
	buf.WriteByte('"')
	buf.WriteString(strings.ReplaceAll(seg, `"`, `""`))
	buf.WriteByte('"')
	return buf.String()
}
