package pipeline

import (
	"context"
	"fmt"

	"platewise/internal/llm"
	"platewise/internal/recipe"
)

// Fixed clarification replies, produced without a model call.
const (
	AskIngredientsMessage = "Tell me what ingredients you have so I can recommend recipes."
	NoMatchMessage        = "I couldn't find a matching recipe. Want to relax constraints or add more ingredients?"
)

// Generator produces the final assistant turn: a deterministic clarification
// when there is nothing to recommend, otherwise one model call rendering the
// top-3 list in a fixed format.
type Generator struct {
	LLM llm.Client
}

func (g *Generator) Run(ctx context.Context, st recipe.State) (string, error) {
	if len(st.Ingredients) == 0 {
		return AskIngredientsMessage, nil
	}
	if len(st.MatchedRecipes) == 0 {
		return NoMatchMessage, nil
	}

	ctx = llm.WithStage(ctx, "generate")
	reply, err := g.LLM.GenerateText(ctx, generatePrompt(st))
	if err != nil {
		return "", fmt.Errorf("pipeline: generate recommendation: %w", err)
	}
	return reply, nil
}
