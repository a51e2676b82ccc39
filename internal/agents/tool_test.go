package agents

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"valid object", `{"origin":"LHR"}`, false},
		{"empty string", "", false},
		{"whitespace only", "  \n", false},
		{"null object", "null", false},
		{"malformed", `{"origin":`, true},
		{"array not object", `[1,2]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := decodePayload(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, fields)
		})
	}
}

func TestSuccessResult(t *testing.T) {
	raw := successResult(map[string]any{"transaction_id": "txn-1"})

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, "success", decoded["status"])
	assert.Equal(t, "txn-1", decoded["transaction_id"])
}

func TestErrorResult(t *testing.T) {
	raw := errorResult("Agent '%s' not found", "ghost")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, "error", decoded["status"])
	assert.Equal(t, "Agent 'ghost' not found", decoded["message"])
}

func TestFieldHelpers(t *testing.T) {
	fields := map[string]any{
		"name":   "value",
		"count":  float64(3),
		"ratio":  0.25,
		"flag":   true,
		"nested": map[string]any{"k": "v"},
		"items":  []any{"a"},
	}

	assert.Equal(t, "value", stringField(fields, "name", "d"))
	assert.Equal(t, "d", stringField(fields, "missing", "d"))
	assert.Equal(t, 3, intField(fields, "count", 0))
	assert.Equal(t, 10, intField(fields, "missing", 10))
	assert.Equal(t, 0.25, floatField(fields, "ratio", 0))
	assert.Equal(t, 0.5, floatField(fields, "missing", 0.5))
	assert.True(t, boolField(fields, "flag", false))
	assert.False(t, boolField(fields, "missing", false))
	assert.Equal(t, map[string]any{"k": "v"}, mapField(fields, "nested"))
	assert.Empty(t, mapField(fields, "missing"))
	assert.Len(t, sliceField(fields, "items"), 1)
	assert.Nil(t, sliceField(fields, "missing"))
}

func TestOptionNumber(t *testing.T) {
	v, ok := optionNumber(map[string]any{"price": 150.0}, "price")
	assert.True(t, ok)
	assert.Equal(t, 150.0, v)

	_, ok = optionNumber(map[string]any{}, "price")
	assert.False(t, ok)

	_, ok = optionNumber("not a map", "price")
	assert.False(t, ok)

	v, ok = optionNumber(map[string]any{"price": "99.5"}, "price")
	assert.True(t, ok)
	assert.Equal(t, 99.5, v)
}
