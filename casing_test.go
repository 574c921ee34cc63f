package pgfrag

import (
	"reflect"
	"testing"
)

func TestQuoteIdent_plain(t *testing.T) {
	eq(t, `"users"`, QuoteIdent(`users`))
	eq(t, `"users"."id"`, QuoteIdent(`users.id`))
}

func TestQuoteIdent_preQuoted(t *testing.T) {
	eq(t, `"Users"`, QuoteIdent(`"Users"`))
}

func TestQuoteIdent_wholeIdentifierCasingTrigger(t *testing.T) {
	// Uppercase anywhere in the dotted path snake-cases every segment,
	// even segments with no uppercase of their own.
	eq(t, `"user_accounts"."user_id"`, QuoteIdent(`userAccounts.userId`))
	eq(t, `"foo"."bar"`, QuoteIdent(`Foo.bar`))
}

func TestQuoteIdent_embeddedQuote(t *testing.T) {
	eq(t, `"a""b"`, QuoteIdent(`a"b`))
}

func eq(t *testing.T, expected, actual any) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %#v, got %#v", expected, actual)
	}
}
