package pgfrag

import json "github.com/goccy/go-json"

// encodeJSONParam serializes a value destined for a `CAST($k AS "json")`
// parameter. Uses `goccy/go-json`, a drop-in `encoding/json`-compatible
// encoder, rather than the standard library, matching the rest of the
// ambient JSON handling in this module.
func encodeJSONParam(val any) (string, error) {
	bytes, err := json.Marshal(val)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// shouldAutoCastJSON decides, for a `Param` whose `JSONCast` is
// `jsonAuto`, whether the value should be treated as a JSON parameter per
// the config's auto-cast flags. Only Go's own `map[string]any`/`[]any`
// count as "plain object"/"plain array" — a user-defined struct is never
// auto-cast and must go through `JSON` explicitly. See DESIGN.md.
func shouldAutoCastJSON(val any, cfg Config) bool {
	switch val.(type) {
	case map[string]any:
		return cfg.CastMapParamsToJSON
	case []any:
		return cfg.CastSliceParamsToJSON
	default:
		return false
	}
}
