package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// resultsEnvelope is the {"data": [...]} form of an /analyze response
type resultsEnvelope struct {
	Data *[]ResultItem `json:"data"`
}

// DecodeResults decodes an /analyze body. Two shapes are accepted:
// a bare JSON array of results, or an object carrying that array under
// "data". Anything else is a decode error.
func DecodeResults(body []byte) ([]ResultItem, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, newDecodeError("/analyze", "", "unexpected response shape: empty body", nil)
	}

	switch trimmed[0] {
	case '[':
		var items []ResultItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, newDecodeError("/analyze", "", "failed to decode response", err)
		}
		return items, nil

	case '{':
		var env resultsEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, newDecodeError("/analyze", "", "failed to decode response", err)
		}
		if env.Data == nil {
			return nil, newDecodeError("/analyze", "", "unexpected response shape: missing data array", nil)
		}
		return *env.Data, nil
	}

	return nil, newDecodeError("/analyze", "", fmt.Sprintf("unexpected response shape: starts with %q", trimmed[0]), nil)
}

// decodeDetail pulls a human-readable message out of an error body.
// Only a string detail is used; list-shaped validation errors yield "".
func decodeDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if s, ok := eb.Detail.(string); ok {
		return s
	}
	return ""
}
