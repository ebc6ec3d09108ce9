package httpadapter

import (
	"encoding/json"

	"fortnight-ads/internal/core/port"
)

// parseOptions leniently decodes the `opts` query parameter into request
// variables. Anything that is not a JSON object yields empty options;
// malformed input is never an error.
func parseOptions(options string) port.RequestVars {
	var decoded struct {
		Custom   map[string]any `json:"custom"`
		Fallback map[string]any `json:"fallback"`
	}
	if options != "" {
		// A decode failure leaves the zero value behind on purpose.
		_ = json.Unmarshal([]byte(options), &decoded)
	}
	vars := port.RequestVars{Custom: decoded.Custom, Fallback: decoded.Fallback}
	if vars.Custom == nil {
		vars.Custom = map[string]any{}
	}
	if vars.Fallback == nil {
		vars.Fallback = map[string]any{}
	}
	return vars
}
