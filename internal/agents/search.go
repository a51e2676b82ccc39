package agents

import (
	"context"
	"fmt"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
)

// NewSearchAgent creates the agent responsible for finding travel options.
// Searches run fully deterministic (temperature 0).
func NewSearchAgent(maxToolRounds int, factory PlannerFactory, log logger.Logger) *Agent {
	return NewAgent(
		"search",
		"Specialized in finding and comparing travel options.",
		[]planner.Tool{searchFlightsTool(), searchTrainsTool()},
		planner.Config{Temperature: 0, MaxToolRounds: maxToolRounds},
		factory,
		log,
	)
}

func searchFlightsTool() planner.Tool {
	return planner.Tool{
		Name: "search_flights",
		Description: "Search for flights based on origin, destination, and dates. " +
			"Input should be a JSON object with 'origin', 'destination', 'departure_date', " +
			"and optional 'return_date' and 'passengers'.",
		Invoke: searchFlights,
	}
}

func searchTrainsTool() planner.Tool {
	return planner.Tool{
		Name: "search_trains",
		Description: "Search for train routes based on origin, destination, and date. " +
			"Input should be a JSON object with 'origin', 'destination', 'date', " +
			"and optional 'passengers'.",
		Invoke: searchTrains,
	}
}

// searchFlights simulates a flight search. A real implementation would call
// a flight API here.
func searchFlights(_ context.Context, payload string) string {
	params, err := decodePayload(payload)
	if err != nil {
		return errorResult("%v", err)
	}

	departureDate := stringField(params, "departure_date", "")

	return successResult(map[string]any{
		"results": []any{
			map[string]any{
				"id":             "flt_123",
				"airline":        "Demo Airlines",
				"flight_number":  "DA123",
				"origin":         stringField(params, "origin", "Unknown"),
				"destination":    stringField(params, "destination", "Unknown"),
				"departure_time": fmt.Sprintf("%sT10:00:00", departureDate),
				"arrival_time":   fmt.Sprintf("%sT12:00:00", departureDate),
				"price":          299.99,
				"currency":       "USD",
			},
		},
	})
}

// searchTrains simulates a train route search.
func searchTrains(_ context.Context, payload string) string {
	params, err := decodePayload(payload)
	if err != nil {
		return errorResult("%v", err)
	}

	date := stringField(params, "date", "")

	return successResult(map[string]any{
		"results": []any{
			map[string]any{
				"id":             "train_456",
				"train_name":     "Express Train",
				"train_number":   "ET456",
				"origin":         stringField(params, "origin", "Unknown"),
				"destination":    stringField(params, "destination", "Unknown"),
				"departure_time": fmt.Sprintf("%sT08:30:00", date),
				"arrival_time":   fmt.Sprintf("%sT11:45:00", date),
				"price":          89.99,
				"currency":       "USD",
				"class":          "Standard",
			},
		},
	})
}
