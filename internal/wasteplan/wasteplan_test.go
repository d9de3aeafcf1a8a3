package wasteplan

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"platewise/internal/llm"
)

var testNow = time.Date(2026, 1, 14, 9, 0, 0, 0, time.UTC)

func TestPrioritize(t *testing.T) {
	inventory := []InventoryItem{
		{Ingredient: "Milk", ExpiryDate: "2026-01-18"},
		{Ingredient: "spinach", ExpiryDate: "2026-01-16"},
		{Ingredient: "rice"},
		{Ingredient: "frozen peas", ExpiryDate: "2026-03-01"},
		{Ingredient: "  "},
		{Ingredient: "yogurt", ExpiryDate: "soon"},
	}

	got := Prioritize(inventory, 5, testNow)

	require.Len(t, got.Urgent, 2)
	require.Equal(t, "spinach", got.Urgent[0].Ingredient)
	require.Equal(t, 2, got.Urgent[0].DaysLeft)
	require.Equal(t, "milk", got.Urgent[1].Ingredient)
	require.Equal(t, 4, got.Urgent[1].DaysLeft)

	require.Len(t, got.NonUrgent, 1)
	require.Equal(t, "frozen peas", got.NonUrgent[0].Ingredient)

	// no date and unparseable date both land in unknown
	require.Len(t, got.UnknownExpiry, 2)
	require.Equal(t, "rice", got.UnknownExpiry[0].Ingredient)
	require.Equal(t, "yogurt", got.UnknownExpiry[1].Ingredient)
}

func TestPrioritizeCountsLocalCalendarDays(t *testing.T) {
	// Jan 14 20:00 in UTC-5 is Jan 15 01:00 UTC; the local calendar still
	// says Jan 14, so Jan 16 is 2 days out.
	evening := time.Date(2026, 1, 14, 20, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))
	got := Prioritize([]InventoryItem{{Ingredient: "spinach", ExpiryDate: "2026-01-16"}}, 5, evening)

	require.Len(t, got.Urgent, 1)
	require.Equal(t, 2, got.Urgent[0].DaysLeft)
}

func TestPlanPromptKeepsZeroDaysLeft(t *testing.T) {
	plan := Prioritize([]InventoryItem{{Ingredient: "milk", ExpiryDate: "2026-01-14"}}, 5, testNow)
	require.Len(t, plan.Urgent, 1)
	require.Equal(t, 0, plan.Urgent[0].DaysLeft)

	prompt := planPrompt(plan, "", nil)
	require.Contains(t, prompt, `"days_left":0`, "items expiring today must keep their day count in the prompt")
}

func TestPrioritizeBoundary(t *testing.T) {
	inventory := []InventoryItem{
		{Ingredient: "cheese", ExpiryDate: "2026-01-19"}, // exactly threshold days out
		{Ingredient: "butter", ExpiryDate: "2026-01-20"},
	}
	got := Prioritize(inventory, 5, testNow)
	require.Len(t, got.Urgent, 1)
	require.Equal(t, "cheese", got.Urgent[0].Ingredient)
	require.Len(t, got.NonUrgent, 1)
}

func TestRunEmptyInventoryAsksWithoutPlanCall(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{[]byte(`{"inventory": [], "days_threshold": 5}`)}

	p := &Planner{LLM: fake, Now: func() time.Time { return testNow }}
	out, err := p.Run(context.Background(), "help me waste less food")
	require.NoError(t, err)
	require.Equal(t, AskInventoryMessage, out)
	require.Zero(t, fake.TextCalls)
}

func TestRunBuildsPlan(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{[]byte(`{
		"inventory": [
			{"ingredient": "spinach", "expiry_date": "2026-01-16"},
			{"ingredient": "rice", "expiry_date": null}
		],
		"days_threshold": 5,
		"max_cooking_time": 30,
		"cuisine_preference": "Italian"
	}`)}
	fake.Text = []string{"USE-FIRST (next 1 items):\n- spinach (expires 2026-01-16, 2 days left)\n\nACTIONS (storage + prep):\n- blanch and freeze spinach\n\n2-DAY MINI PLAN:\nDay 1: spinach risotto\nDay 2: fried rice"}

	p := &Planner{LLM: fake, Now: func() time.Time { return testNow }}
	out, err := p.Run(context.Background(), "spinach expiring 2026-01-16, rice, Italian under 30 min")
	require.NoError(t, err)
	require.Contains(t, out, "USE-FIRST")
	require.Equal(t, 1, fake.TextCalls)

	prompt := fake.Prompts[len(fake.Prompts)-1]
	require.Contains(t, prompt, `"spinach"`)
	require.Contains(t, prompt, "Cuisine: Italian")
	require.Contains(t, prompt, "Max cooking time: 30 minutes")
	require.True(t, strings.Contains(prompt, "USE-FIRST (next 1 items):"))
}

func TestRunDefaultsThreshold(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{[]byte(`{
		"inventory": [{"ingredient": "milk", "expiry_date": "2026-01-18"}],
		"days_threshold": 0
	}`)}
	fake.Text = []string{"plan"}

	p := &Planner{LLM: fake, Now: func() time.Time { return testNow }}
	_, err := p.Run(context.Background(), "milk 2026-01-18")
	require.NoError(t, err)

	// with the default threshold of 5, milk (4 days out) is urgent
	prompt := fake.Prompts[len(fake.Prompts)-1]
	require.Contains(t, prompt, "USE-FIRST (next 1 items):")
}
