package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"platewise/internal/llm"
	"platewise/internal/recipe"
)

func scored(name string, score int) recipe.Scored {
	return recipe.Scored{Recipe: recipe.Recipe{Name: name}, Score: score}
}

func names(out []recipe.Scored) []string {
	got := make([]string, len(out))
	for i, c := range out {
		got[i] = c.Name
	}
	return got
}

func TestRankEmptyCandidatesSkipsModel(t *testing.T) {
	fake := llm.NewFakeClient()
	r := Ranker{LLM: fake}

	out, err := r.Run(context.Background(), nil, recipe.Preferences{})
	require.NoError(t, err)
	require.Empty(t, out)
	require.Zero(t, fake.Calls(), "empty candidate set must not invoke the model")
}

func TestRankFollowsModelOrder(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.Text = []string{"B, A"}
	r := Ranker{LLM: fake}

	out, err := r.Run(context.Background(), []recipe.Scored{scored("A", 3), scored("B", 1)}, recipe.Preferences{})
	require.NoError(t, err)
	require.Equal(t, []string{"B", "A"}, names(out), "model order wins regardless of score")
}

func TestRankAppendsOmittedByScoreStable(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.Text = []string{"A"}
	r := Ranker{LLM: fake}

	out, err := r.Run(context.Background(),
		[]recipe.Scored{scored("A", 1), scored("B", 4), scored("C", 4)},
		recipe.Preferences{})
	require.NoError(t, err)
	// B before C: equal scores keep original relative order.
	require.Equal(t, []string{"A", "B", "C"}, names(out))
}

func TestRankIgnoresUnknownAndRepeatedNames(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.Text = []string{"Ghost Stew, B, B, , A, Phantom Pie"}
	r := Ranker{LLM: fake}

	in := []recipe.Scored{scored("A", 2), scored("B", 5), scored("C", 1)}
	out, err := r.Run(context.Background(), in, recipe.Preferences{})
	require.NoError(t, err)
	require.Len(t, out, len(in), "output must be a permutation of the input")
	require.Equal(t, []string{"B", "A", "C"}, names(out))
}

func TestRankModelFailureIsFatal(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.Err = errors.New("boom")
	r := Ranker{LLM: fake}

	_, err := r.Run(context.Background(), []recipe.Scored{scored("A", 1)}, recipe.Preferences{})
	require.Error(t, err)
}

func TestReconcilePermutationWithSubsetAndExtras(t *testing.T) {
	in := []recipe.Scored{scored("A", 1), scored("B", 2), scored("C", 3), scored("D", 2)}

	out := reconcile([]string{"C", "Nope"}, in)
	require.Equal(t, []string{"C", "B", "D", "A"}, names(out),
		"unmatched candidates sort by descending score, ties stable")

	out = reconcile(nil, in)
	require.Equal(t, []string{"C", "B", "D", "A"}, names(out))
}
