package agent

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"platewise/internal/llm"
	"platewise/internal/pipeline"
	"platewise/internal/recipe"
	"platewise/internal/repository/prices"
	"platewise/internal/repository/wallet"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newManager(t *testing.T, fake *llm.FakeClient) *Manager {
	t.Helper()
	priceStore := prices.New(writeFile(t, "prices.csv",
		"ingredient,store,price_usd,unit\nrice,BudgetGrocer,1.99,kg\ntofu,GreenMart,2.20,block\n"))
	walletStore := wallet.New(writeFile(t, "wallet.csv",
		"user_id,pin,balance_usd\nuser_1,1234,50.00\n"))
	catalog := []recipe.Recipe{{
		ID: 1, Name: "Veggie Rice Bowl", Cuisine: "Fusion", CookingTime: 18,
		Dietary:     []string{"vegan"},
		Ingredients: []string{"rice", "vegetables", "beans", "avocado"},
	}}
	return New(fake, pipeline.New(fake, catalog), priceStore, walletStore)
}

func routeJSON(agent string, rest string) json.RawMessage {
	if rest != "" {
		rest = ", " + rest
	}
	return json.RawMessage(`{"agent": "` + agent + `"` + rest + `}`)
}

func TestRespondRoutesToPrices(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{routeJSON("prices", `"ingredients": ["rice", "saffron"]`)}

	m := newManager(t, fake)
	st, reply, err := m.Respond(context.Background(), recipe.State{}, "how much is rice? and saffron?")
	require.NoError(t, err)
	require.Contains(t, reply, "rice: $1.99 per kg at BudgetGrocer")
	require.Contains(t, reply, "saffron: no price found")

	require.Len(t, st.Messages, 2)
	require.Equal(t, recipe.RoleAssistant, st.Messages[1].Role)
}

func TestRespondPricesWithoutIngredientsAsks(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{routeJSON("prices", `"ingredients": []`)}

	m := newManager(t, fake)
	_, reply, err := m.Respond(context.Background(), recipe.State{}, "what do prices look like?")
	require.NoError(t, err)
	require.Equal(t, "Which ingredients would you like prices for?", reply)
}

func TestRespondWalletBalance(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{routeJSON("wallet", `"user_id": "user_1", "pin": "1234", "action": "balance"`)}

	m := newManager(t, fake)
	_, reply, err := m.Respond(context.Background(), recipe.State{}, "what's my balance? user_1 pin 1234")
	require.NoError(t, err)
	require.Equal(t, "Your balance is $50.00.", reply)
}

func TestRespondWalletDeduct(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{routeJSON("wallet",
		`"user_id": "user_1", "pin": "1234", "amount": 12.5, "action": "deduct"`)}

	m := newManager(t, fake)
	_, reply, err := m.Respond(context.Background(), recipe.State{}, "charge me 12.50, user_1 pin 1234")
	require.NoError(t, err)
	require.Equal(t, "Done. Your new balance is $37.50.", reply)
}

func TestRespondWalletInsufficientFundsIsRecoverable(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{routeJSON("wallet",
		`"user_id": "user_1", "pin": "1234", "amount": 500, "action": "deduct"`)}

	m := newManager(t, fake)
	_, reply, err := m.Respond(context.Background(), recipe.State{}, "charge me 500, user_1 pin 1234")
	require.NoError(t, err, "insufficient funds is a reply, not a failure")
	require.Equal(t, "Insufficient funds: your balance is $50.00.", reply)
}

func TestRespondWalletUnknownUserIsRecoverable(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{routeJSON("wallet", `"user_id": "nobody", "action": "balance"`)}

	m := newManager(t, fake)
	_, reply, err := m.Respond(context.Background(), recipe.State{}, "balance for nobody")
	require.NoError(t, err)
	require.Equal(t, "I couldn't find that wallet account.", reply)
}

func TestRespondWalletWithoutUserIDAsks(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{routeJSON("wallet", `"action": "balance"`)}

	m := newManager(t, fake)
	_, reply, err := m.Respond(context.Background(), recipe.State{}, "check my wallet")
	require.NoError(t, err)
	require.Equal(t, "Please tell me your wallet user id and PIN.", reply)
}

func TestRespondDefaultsToRecipes(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{
		routeJSON("weather", ""), // unknown agent falls back to recipes
		[]byte(`{"ingredients": ["rice", "vegetables", "beans"], "dietary_restrictions": [], "max_cooking_time": null, "cuisine_preference": null}`),
	}
	fake.Text = []string{"Veggie Rice Bowl", "Here you go:\n1. Veggie Rice Bowl (18 min) - Fusion"}

	m := newManager(t, fake)
	st, reply, err := m.Respond(context.Background(), recipe.State{}, "I have rice, vegetables and beans")
	require.NoError(t, err)
	require.Contains(t, reply, "Veggie Rice Bowl")
	require.Len(t, st.Messages, 2)
	require.Len(t, st.MatchedRecipes, 1)
}

func TestRespondClassificationFailureIsFatal(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.Err = errors.New("model down")

	m := newManager(t, fake)
	st := recipe.State{}.WithMessage(recipe.RoleUser, "earlier turn")
	out, _, err := m.Respond(context.Background(), st, "anything")
	require.Error(t, err)
	require.Equal(t, st, out, "failed turn must leave the state untouched")
}

func TestRespondRoutesToWaste(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = []json.RawMessage{
		routeJSON("waste", ""),
		[]byte(`{"inventory": [{"ingredient": "spinach", "expiry_date": "2099-01-01"}], "days_threshold": 5}`),
	}
	fake.Text = []string{"USE-FIRST (next 0 items):\n\nACTIONS (storage + prep):\n- freeze spinach\n\n2-DAY MINI PLAN:\nDay 1: salad\nDay 2: soup"}

	m := newManager(t, fake)
	st, reply, err := m.Respond(context.Background(), recipe.State{}, "help me not waste my spinach")
	require.NoError(t, err)
	require.Contains(t, reply, "2-DAY MINI PLAN")
	require.Len(t, st.Messages, 2)
}
