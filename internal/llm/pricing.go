package llm

// ModelCost holds per-million-token pricing for a model in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
// Friendly names are resolved first.
func LookupCost(modelID string) *ModelCost {
	for _, names := range []map[string]string{geminiModels, anthropicModels, openaiModels} {
		modelID = resolveModel(modelID, names)
	}
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

// modelCosts covers the models the tour is configured for out of the box.
// Image output tokens for gemini-2.5-flash-image are billed at the image rate.
var modelCosts = map[string]ModelCost{
	// Google (Gemini)
	"gemini-2.5-flash":       {0.3, 2.5},
	"gemini-2.5-flash-image": {0.3, 30},
	"gemini-2.5-pro":         {1.25, 10},
	"gemini-3-flash-preview": {0.5, 3},
	"gemini-3-pro-preview":   {2, 12},

	// Anthropic
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-sonnet-4-5-20250929": {3, 15},

	// OpenAI
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},

	// OpenRouter
	"google/gemini-2.5-flash": {0.3, 2.5},
}
