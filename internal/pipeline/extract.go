package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"platewise/internal/llm"
	"platewise/internal/recipe"
)

// Extractor turns the conversation so far into structured preferences with a
// single structured-JSON model call.
type Extractor struct {
	LLM llm.Client
}

func (e *Extractor) Run(ctx context.Context, messages []recipe.Message) (recipe.Preferences, error) {
	ctx = llm.WithStage(ctx, "extract")
	raw, err := e.LLM.GenerateJSON(ctx, extractionPrompt, messages)
	if err != nil {
		return recipe.Preferences{}, fmt.Errorf("pipeline: extract preferences: %w", err)
	}
	var prefs recipe.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return recipe.Preferences{}, fmt.Errorf("pipeline: decode preferences: %w", err)
	}
	return prefs, nil
}
