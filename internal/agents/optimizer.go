package agents

import (
	"context"
	"math"
	"sort"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
)

// NewOptimizerAgent creates the agent responsible for optimizing travel
// plans and making recommendations. Slightly higher temperature for more
// exploratory recommendations.
func NewOptimizerAgent(maxToolRounds int, factory PlannerFactory, log logger.Logger) *Agent {
	return NewAgent(
		"optimizer",
		"Specialized in optimizing travel plans and making recommendations.",
		[]planner.Tool{
			findCheapestTool(),
			findFastestTool(),
			recommendTool(),
		},
		planner.Config{Temperature: 0.7, MaxToolRounds: maxToolRounds},
		factory,
		log,
	)
}

func findCheapestTool() planner.Tool {
	return planner.Tool{
		Name: "find_cheapest_option",
		Description: "Find the cheapest travel option from a list of options. " +
			"Input should be a JSON object with an 'options' array containing 'price' and other details.",
		Invoke: findCheapestOption,
	}
}

func findFastestTool() planner.Tool {
	return planner.Tool{
		Name: "find_fastest_option",
		Description: "Find the fastest travel option from a list of options. " +
			"Input should be a JSON object with an 'options' array containing 'duration_minutes' and other details.",
		Invoke: findFastestOption,
	}
}

func recommendTool() planner.Tool {
	return planner.Tool{
		Name: "recommend_based_on_preferences",
		Description: "Recommend the best travel option based on user preferences. " +
			"Input should be a JSON object with an 'options' array and a 'preferences' object.",
		Invoke: recommendBasedOnPreferences,
	}
}

// findCheapestOption scans for the minimum price. Options without a price
// are treated as infinitely expensive.
func findCheapestOption(_ context.Context, payload string) string {
	return selectMinimum(payload, "price")
}

// findFastestOption scans for the minimum duration in minutes.
func findFastestOption(_ context.Context, payload string) string {
	return selectMinimum(payload, "duration_minutes")
}

func selectMinimum(payload, key string) string {
	data, err := decodePayload(payload)
	if err != nil {
		return errorResult("%v", err)
	}

	options := sliceField(data, "options")
	if len(options) == 0 {
		return errorResult("No options provided")
	}

	best := options[0]
	bestValue := math.Inf(1)
	if v, ok := optionNumber(options[0], key); ok {
		bestValue = v
	}

	for _, option := range options[1:] {
		value := math.Inf(1)
		if v, ok := optionNumber(option, key); ok {
			value = v
		}
		if value < bestValue {
			best = option
			bestValue = value
		}
	}

	return successResult(map[string]any{"result": best})
}

// recommendBasedOnPreferences scores every option by weighted normalized
// price and duration and returns the top pick plus the full ranking.
// Lower price and shorter duration score higher; weights default to 0.5.
func recommendBasedOnPreferences(_ context.Context, payload string) string {
	data, err := decodePayload(payload)
	if err != nil {
		return errorResult("%v", err)
	}

	options := sliceField(data, "options")
	if len(options) == 0 {
		return errorResult("No options provided")
	}

	preferences := mapField(data, "preferences")
	priceWeight := floatField(preferences, "price_importance", 0.5)
	durationWeight := floatField(preferences, "duration_importance", 0.5)

	// Normalizers computed once over the full candidate set; a zero max
	// falls back to 1 to avoid division by zero.
	maxPrice := maxOver(options, "price")
	maxDuration := maxOver(options, "duration_minutes")

	score := func(option any) float64 {
		var s float64
		price, _ := optionNumber(option, "price")
		s += (1 - price/maxPrice) * priceWeight
		duration, _ := optionNumber(option, "duration_minutes")
		s += (1 - duration/maxDuration) * durationWeight
		return s
	}

	ranked := make([]any, len(options))
	copy(ranked, options)

	// Stable sort keeps the original order for tied scores
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) > score(ranked[j])
	})

	return successResult(map[string]any{
		"result":     ranked[0],
		"all_ranked": ranked,
	})
}

func maxOver(options []any, key string) float64 {
	var max float64
	for _, option := range options {
		if v, ok := optionNumber(option, key); ok && v > max {
			max = v
		}
	}
	if max == 0 {
		return 1
	}
	return max
}
