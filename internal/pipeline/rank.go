package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"platewise/internal/llm"
	"platewise/internal/recipe"
)

// Ranker reorders the candidate set with one free-text model call. The model
// only returns recipe names; reconcile merges its answer back onto the real
// candidates so that the result is always a permutation of the input.
type Ranker struct {
	LLM llm.Client
}

func (r *Ranker) Run(ctx context.Context, candidates []recipe.Scored, prefs recipe.Preferences) ([]recipe.Scored, error) {
	if len(candidates) == 0 {
		return []recipe.Scored{}, nil
	}

	ctx = llm.WithStage(ctx, "rank")
	reply, err := r.LLM.GenerateText(ctx, rankPrompt(candidates, prefs))
	if err != nil {
		return nil, fmt.Errorf("pipeline: rank recipes: %w", err)
	}
	return reconcile(parseNames(reply), candidates), nil
}

// parseNames splits the model reply on commas, trimming whitespace and
// dropping empty tokens.
func parseNames(reply string) []string {
	parts := strings.Split(reply, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// reconcile emits candidates in the model's name order (first occurrence
// wins, each candidate at most once), then appends every candidate the model
// did not mention, sorted by descending score with original order kept on
// ties. Unrecognized names are ignored. len(out) == len(candidates) always.
func reconcile(names []string, candidates []recipe.Scored) []recipe.Scored {
	used := make([]bool, len(candidates))
	out := make([]recipe.Scored, 0, len(candidates))

	for _, name := range names {
		for i, c := range candidates {
			if !used[i] && c.Name == name {
				used[i] = true
				out = append(out, c)
				break
			}
		}
	}

	rest := make([]recipe.Scored, 0, len(candidates)-len(out))
	for i, c := range candidates {
		if !used[i] {
			rest = append(rest, c)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].Score > rest[j].Score })

	return append(out, rest...)
}
