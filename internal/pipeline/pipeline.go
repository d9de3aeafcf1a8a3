package pipeline

import (
	"context"

	"platewise/internal/llm"
	"platewise/internal/recipe"
)

// Pipeline is the fixed four-stage recipe graph:
//
//	extract preferences -> search catalog -> rank candidates -> generate reply
//
// The topology never varies, so the stages are plain structs composed by a
// sequential driver rather than a dynamic graph. Each stage merges its output
// into the state; fields a stage does not touch persist unchanged.
type Pipeline struct {
	extract  Extractor
	rank     Ranker
	generate Generator
	catalog  []recipe.Recipe
}

func New(cli llm.Client, catalog []recipe.Recipe) *Pipeline {
	return &Pipeline{
		extract:  Extractor{LLM: cli},
		rank:     Ranker{LLM: cli},
		generate: Generator{LLM: cli},
		catalog:  catalog,
	}
}

// Run executes one pipeline pass over a state whose message history already
// ends with the new user turn. On success the returned state carries the
// generated assistant turn; on failure the input state is returned unchanged
// so the caller can discard the partial run.
func (p *Pipeline) Run(ctx context.Context, st recipe.State) (recipe.State, error) {
	prefs, err := p.extract.Run(ctx, st.Messages)
	if err != nil {
		return st, err
	}
	next := st.WithPreferences(prefs)

	next = next.WithMatches(Search(next.Preferences(), p.catalog))

	ranked, err := p.rank.Run(ctx, next.MatchedRecipes, next.Preferences())
	if err != nil {
		return st, err
	}
	next = next.WithMatches(ranked)

	reply, err := p.generate.Run(ctx, next)
	if err != nil {
		return st, err
	}
	return next.WithMessage(recipe.RoleAssistant, reply), nil
}
