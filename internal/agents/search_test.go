package agents

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResult(t *testing.T, raw string) map[string]any {
	t.Helper()
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	return decoded
}

func TestSearchFlights(t *testing.T) {
	raw := searchFlights(context.Background(), `{"origin":"LHR","destination":"CDG","departure_date":"2024-01-01"}`)
	decoded := decodeResult(t, raw)

	require.Equal(t, "success", decoded["status"])
	results := decoded["results"].([]any)
	require.Len(t, results, 1)

	flight := results[0].(map[string]any)
	assert.Equal(t, "flt_123", flight["id"])
	assert.Equal(t, "Demo Airlines", flight["airline"])
	assert.Equal(t, "LHR", flight["origin"])
	assert.Equal(t, "CDG", flight["destination"])
	assert.Equal(t, "2024-01-01T10:00:00", flight["departure_time"])
	assert.Equal(t, "2024-01-01T12:00:00", flight["arrival_time"])
	assert.Equal(t, 299.99, flight["price"])
	assert.Equal(t, "USD", flight["currency"])
}

func TestSearchFlightsDefaultsUnknown(t *testing.T) {
	raw := searchFlights(context.Background(), `{}`)
	decoded := decodeResult(t, raw)

	require.Equal(t, "success", decoded["status"])
	flight := decoded["results"].([]any)[0].(map[string]any)
	assert.Equal(t, "Unknown", flight["origin"])
	assert.Equal(t, "Unknown", flight["destination"])
}

func TestSearchFlightsMalformedPayload(t *testing.T) {
	raw := searchFlights(context.Background(), `{broken`)
	decoded := decodeResult(t, raw)

	assert.Equal(t, "error", decoded["status"])
	assert.NotEmpty(t, decoded["message"])
}

func TestSearchTrains(t *testing.T) {
	raw := searchTrains(context.Background(), `{"origin":"London","destination":"Paris","date":"2024-02-02"}`)
	decoded := decodeResult(t, raw)

	require.Equal(t, "success", decoded["status"])
	train := decoded["results"].([]any)[0].(map[string]any)
	assert.Equal(t, "train_456", train["id"])
	assert.Equal(t, "Express Train", train["train_name"])
	assert.Equal(t, "ET456", train["train_number"])
	assert.Equal(t, "2024-02-02T08:30:00", train["departure_time"])
	assert.Equal(t, "2024-02-02T11:45:00", train["arrival_time"])
	assert.Equal(t, 89.99, train["price"])
	assert.Equal(t, "Standard", train["class"])
}

func TestNewSearchAgentCatalog(t *testing.T) {
	agent := NewSearchAgent(5, nil, nil)
	assert.Equal(t, "search", agent.Name())
	assert.Equal(t, []string{"search_flights", "search_trains"}, agent.ToolNames())
}
