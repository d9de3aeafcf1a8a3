package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"platewise/internal/llm"
	"platewise/internal/recipe"
)

func TestPipelineRunHappyPath(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{[]byte(`{
		"ingredients": ["rice", "vegetables", "beans"],
		"dietary_restrictions": ["vegan"],
		"max_cooking_time": 20,
		"cuisine_preference": "Asian"
	}`)}
	fake.Text = []string{
		"Veggie Rice Bowl",
		"Based on your ingredients and preferences, here are 3 recipes:\n1. Veggie Rice Bowl (18 min) - Fusion\nWhich one would you like the full recipe for?",
	}

	p := New(fake, testCatalog())
	st := recipe.State{}.WithMessage(recipe.RoleUser, "I have rice, vegetables and beans. Vegan, under 20 minutes, Asian please.")

	out, err := p.Run(context.Background(), st)
	require.NoError(t, err)

	// Messages grow by exactly the assistant turn.
	require.Len(t, out.Messages, 2)
	require.Equal(t, recipe.RoleUser, out.Messages[0].Role)
	require.Equal(t, recipe.RoleAssistant, out.Messages[1].Role)

	require.Equal(t, []string{"rice", "vegetables", "beans"}, out.Ingredients)
	require.NotNil(t, out.MaxCookingTime)
	require.Equal(t, 20, *out.MaxCookingTime)

	require.Len(t, out.MatchedRecipes, 1)
	require.Equal(t, "Veggie Rice Bowl", out.MatchedRecipes[0].Name)
	require.Equal(t, 3, out.MatchedRecipes[0].Score)

	// extract (JSON) + rank + generate (text).
	require.Equal(t, 1, fake.JSONCalls)
	require.Equal(t, 2, fake.TextCalls)
}

func TestPipelineExtractionFailureDiscardsPartialState(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.Err = errors.New("model down")

	p := New(fake, testCatalog())
	st := recipe.State{}.WithMessage(recipe.RoleUser, "hello")

	out, err := p.Run(context.Background(), st)
	require.Error(t, err)
	require.Equal(t, st, out, "failed run must leave the input state untouched")
}

func TestPipelineMalformedExtractionIsFatal(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{[]byte(`"not an object"`)}

	p := New(fake, testCatalog())
	st := recipe.State{}.WithMessage(recipe.RoleUser, "hello")

	_, err := p.Run(context.Background(), st)
	require.Error(t, err)
}

func TestPipelineNoCandidatesSkipsRankAndGenerateCalls(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{[]byte(`{
		"ingredients": ["durian"],
		"dietary_restrictions": [],
		"max_cooking_time": null,
		"cuisine_preference": null
	}`)}

	p := New(fake, testCatalog())
	st := recipe.State{}.WithMessage(recipe.RoleUser, "I only have durian.")

	out, err := p.Run(context.Background(), st)
	require.NoError(t, err)
	require.Empty(t, out.MatchedRecipes)

	last, ok := out.LastMessage()
	require.True(t, ok)
	require.Equal(t, NoMatchMessage, last.Content)

	// One extraction call; no rank, no generate.
	require.Equal(t, 1, fake.JSONCalls)
	require.Zero(t, fake.TextCalls)
}
