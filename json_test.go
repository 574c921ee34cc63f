package pgfrag

import "testing"

func TestShouldAutoCastJSON_onlyGoNativeContainerTypes(t *testing.T) {
	cfg := Config{CastMapParamsToJSON: true, CastSliceParamsToJSON: true}

	eq(t, true, shouldAutoCastJSON(map[string]any{}, cfg))
	eq(t, true, shouldAutoCastJSON([]any{}, cfg))
	eq(t, false, shouldAutoCastJSON(`plain string`, cfg))
	eq(t, false, shouldAutoCastJSON(widgetRow{}, cfg))
}

func TestShouldAutoCastJSON_respectsDisabledFlags(t *testing.T) {
	cfg := Config{}
	eq(t, false, shouldAutoCastJSON(map[string]any{}, cfg))
	eq(t, false, shouldAutoCastJSON([]any{}, cfg))
}

func TestEncodeJSONParam(t *testing.T) {
	out, err := encodeJSONParam([]any{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	eq(t, `[1,2,3]`, out)
}
