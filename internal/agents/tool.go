package agents

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// decodePayload parses a tool payload as a JSON object. An empty payload is
// treated as an empty object so tools can rely on field defaults.
func decodePayload(payload string) (map[string]any, error) {
	if strings.TrimSpace(payload) == "" {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// successResult encodes a tool success result with the given domain fields.
func successResult(fields map[string]any) string {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["status"] = StatusSuccess

	data, err := json.Marshal(body)
	if err != nil {
		return errorResult("failed to encode result: %v", err)
	}
	return string(data)
}

// errorResult encodes a tool error result. Tools never raise past their
// boundary; every failure becomes one of these.
func errorResult(format string, args ...any) string {
	data, _ := json.Marshal(map[string]any{
		"status":  StatusError,
		"message": fmt.Sprintf(format, args...),
	})
	return string(data)
}

func stringField(fields map[string]any, key, fallback string) string {
	if v, ok := fields[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func floatField(fields map[string]any, key string, fallback float64) float64 {
	switch v := fields[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func intField(fields map[string]any, key string, fallback int) int {
	switch v := fields[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolField(fields map[string]any, key string, fallback bool) bool {
	if v, ok := fields[key].(bool); ok {
		return v
	}
	return fallback
}

func mapField(fields map[string]any, key string) map[string]any {
	if v, ok := fields[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}

func sliceField(fields map[string]any, key string) []any {
	if v, ok := fields[key].([]any); ok {
		return v
	}
	return nil
}

// optionNumber reads a numeric field from a candidate option.
// Returns false when the field is missing or not numeric.
func optionNumber(option any, key string) (float64, bool) {
	fields, ok := option.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := fields[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
