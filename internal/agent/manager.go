// Package agent routes user messages to the recipe pipeline, price lookups,
// wallet operations, or waste-reduction planning.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"platewise/internal/llm"
	"platewise/internal/pipeline"
	"platewise/internal/recipe"
	"platewise/internal/repository/prices"
	"platewise/internal/repository/wallet"
	"platewise/internal/wasteplan"
)

const (
	RouteRecipes = "recipes"
	RoutePrices  = "prices"
	RouteWallet  = "wallet"
	RouteWaste   = "waste"
)

const routePrompt = `You are a routing classifier for a cooking assistant.
Classify the user message into exactly one agent and extract its arguments.
Return ONLY valid JSON with:
{
  "agent": "recipes" | "prices" | "wallet" | "waste",
  "ingredients": [string],
  "user_id": string|null,
  "pin": string|null,
  "amount": number|null,
  "action": "authenticate" | "balance" | "deduct" | null
}

Routing:
- Recipe or cooking suggestions -> "recipes"
- Ingredient prices / where to buy -> "prices" (fill ingredients)
- Wallet, balance, purchase, PIN -> "wallet" (fill user_id, pin, amount, action)
- Reducing food waste, expiring ingredients, leftovers -> "waste"

Only extract values the user explicitly states. Do not invent ids, PINs or
amounts. Default to "recipes" when unsure.`

type route struct {
	Agent       string   `json:"agent"`
	Ingredients []string `json:"ingredients"`
	UserID      string   `json:"user_id"`
	PIN         string   `json:"pin"`
	Amount      *float64 `json:"amount"`
	Action      string   `json:"action"`
}

// Manager owns the sub-agents and dispatches each user turn to one of them.
type Manager struct {
	llm      llm.Client
	pipeline *pipeline.Pipeline
	prices   *prices.Store
	wallet   *wallet.Store
	waste    *wasteplan.Planner
}

func New(cli llm.Client, p *pipeline.Pipeline, priceStore *prices.Store, walletStore *wallet.Store) *Manager {
	return &Manager{
		llm:      cli,
		pipeline: p,
		prices:   priceStore,
		wallet:   walletStore,
		waste:    &wasteplan.Planner{LLM: cli},
	}
}

// Respond classifies the user message, runs the matching sub-agent and
// returns the updated conversation state plus the assistant reply. On error
// the input state is returned unchanged.
func (m *Manager) Respond(ctx context.Context, st recipe.State, userText string) (recipe.State, string, error) {
	r, err := m.classify(ctx, userText)
	if err != nil {
		return st, "", err
	}

	switch r.Agent {
	case RoutePrices:
		reply := m.priceReply(r.Ingredients)
		out := st.WithMessage(recipe.RoleUser, userText).WithMessage(recipe.RoleAssistant, reply)
		return out, reply, nil

	case RouteWallet:
		reply := m.walletReply(r)
		out := st.WithMessage(recipe.RoleUser, userText).WithMessage(recipe.RoleAssistant, reply)
		return out, reply, nil

	case RouteWaste:
		reply, err := m.waste.Run(ctx, userText)
		if err != nil {
			return st, "", fmt.Errorf("agent: waste plan: %w", err)
		}
		out := st.WithMessage(recipe.RoleUser, userText).WithMessage(recipe.RoleAssistant, reply)
		return out, reply, nil

	default:
		out, err := m.pipeline.Run(ctx, st.WithMessage(recipe.RoleUser, userText))
		if err != nil {
			return st, "", err
		}
		last, _ := out.LastMessage()
		return out, last.Content, nil
	}
}

func (m *Manager) classify(ctx context.Context, userText string) (route, error) {
	ctx = llm.WithStage(ctx, "route")
	raw, err := m.llm.GenerateJSON(ctx, routePrompt, map[string]string{"user_message": userText})
	if err != nil {
		return route{}, fmt.Errorf("agent: classify: %w", err)
	}
	var r route
	if err := json.Unmarshal(raw, &r); err != nil {
		return route{}, fmt.Errorf("agent: decode route: %w", err)
	}
	switch r.Agent {
	case RouteRecipes, RoutePrices, RouteWallet, RouteWaste:
	default:
		log.Printf("agent: unknown route %q, falling back to recipes", r.Agent)
		r.Agent = RouteRecipes
	}
	return r, nil
}

func (m *Manager) priceReply(ingredients []string) string {
	cleaned := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			cleaned = append(cleaned, ing)
		}
	}
	if len(cleaned) == 0 {
		return "Which ingredients would you like prices for?"
	}

	var b strings.Builder
	b.WriteString("Best prices found:\n")
	for _, ing := range cleaned {
		q, ok := m.prices.Best(ing)
		if !ok {
			fmt.Fprintf(&b, "- %s: no price found\n", strings.ToLower(ing))
			continue
		}
		fmt.Fprintf(&b, "- %s: $%.2f per %s at %s\n", q.Ingredient, q.PriceUSD, q.Unit, q.Store)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Manager) walletReply(r route) string {
	userID := strings.TrimSpace(r.UserID)
	if userID == "" {
		return "Please tell me your wallet user id and PIN."
	}

	switch r.Action {
	case "authenticate":
		if m.wallet.Authenticate(userID, r.PIN) {
			return fmt.Sprintf("You're authenticated, %s.", userID)
		}
		return "That user id and PIN combination doesn't match."

	case "deduct":
		if !m.wallet.Authenticate(userID, r.PIN) {
			return "I need a valid user id and PIN before charging your wallet."
		}
		if r.Amount == nil || *r.Amount <= 0 {
			return "How much should I deduct?"
		}
		balance, err := m.wallet.Deduct(userID, *r.Amount)
		switch {
		case errors.Is(err, wallet.ErrInsufficientFunds):
			return fmt.Sprintf("Insufficient funds: your balance is $%.2f.", balance)
		case errors.Is(err, wallet.ErrNotFound):
			return "I couldn't find that wallet account."
		case err != nil:
			log.Printf("agent: wallet deduct: %v", err)
			return "I couldn't complete that wallet operation. Please try again."
		}
		return fmt.Sprintf("Done. Your new balance is $%.2f.", balance)

	default: // balance
		balance, err := m.wallet.Balance(userID)
		switch {
		case errors.Is(err, wallet.ErrNotFound):
			return "I couldn't find that wallet account."
		case err != nil:
			log.Printf("agent: wallet balance: %v", err)
			return "I couldn't complete that wallet operation. Please try again."
		}
		return fmt.Sprintf("Your balance is $%.2f.", balance)
	}
}
