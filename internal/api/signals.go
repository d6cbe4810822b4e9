package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// Signals provides access to Datastar signal values. Datastar sends all
// page signals as a flat JSON object in the request body; names are
// lowercase due to data-bind behavior.
type Signals map[string]any

// ReadSignals parses the signal object from a request body.
func ReadSignals(r *http.Request) (Signals, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	var signals Signals
	if err := json.Unmarshal(body, &signals); err != nil {
		return nil, fmt.Errorf("failed to parse signals: %w", err)
	}
	return signals, nil
}

// String returns a string signal value, or empty string if not found.
func (s Signals) String(key string) string {
	if v, ok := s[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// Text returns a signal value as its textual form. Bound inputs usually
// deliver strings, but Datastar infers types from initial values, so a
// numeric field may arrive as a number.
func (s Signals) Text(key string) string {
	v, ok := s[key]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Bool returns a bool signal value, or false if not found.
func (s Signals) Bool(key string) bool {
	if v, ok := s[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Raw returns the re-marshaled JSON of a signal value, for signals that
// carry structured payloads (such as drawn GeoJSON geometry).
func (s Signals) Raw(key string) ([]byte, bool) {
	v, ok := s[key]
	if !ok || v == nil {
		return nil, false
	}
	// Geometry may arrive either as a JSON string or as an object.
	if str, ok := v.(string); ok {
		if str == "" {
			return nil, false
		}
		return []byte(str), true
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return raw, true
}
