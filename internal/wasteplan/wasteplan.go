// Package wasteplan turns a free-text description of a user's fridge into a
// prioritized use-it-before-you-lose-it plan.
package wasteplan

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"platewise/internal/llm"
)

// AskInventoryMessage is returned when the user has not listed any inventory.
const AskInventoryMessage = "Tell me your inventory (and expiry dates if known). Example: " +
	"'spinach expiring 2026-01-16, milk 2026-01-18, rice (no date)'."

// DefaultDaysThreshold marks items urgent when they expire within this many days.
const DefaultDaysThreshold = 5

// InventoryItem is one ingredient the user has on hand. ExpiryDate is
// YYYY-MM-DD when the user gave one, empty otherwise.
type InventoryItem struct {
	Ingredient string `json:"ingredient"`
	ExpiryDate string `json:"expiry_date,omitempty"`
}

// Input is the structured extraction of a waste-reduction request.
type Input struct {
	Inventory         []InventoryItem `json:"inventory"`
	DaysThreshold     int             `json:"days_threshold"`
	MaxCookingTime    *int            `json:"max_cooking_time"`
	CuisinePreference string          `json:"cuisine_preference"`
}

// ClassifiedItem is an inventory item with its expiry classification resolved.
type ClassifiedItem struct {
	Ingredient string `json:"ingredient"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	DaysLeft   int    `json:"days_left"`
}

// Classification buckets inventory by urgency.
type Classification struct {
	Urgent        []ClassifiedItem `json:"urgent"`
	NonUrgent     []ClassifiedItem `json:"non_urgent"`
	UnknownExpiry []ClassifiedItem `json:"unknown_expiry"`
}

const extractPrompt = `Extract inventory + preferences from the user message.
Return ONLY valid JSON with:
{
  "inventory": [{"ingredient": string, "expiry_date": string|null}],
  "days_threshold": integer,
  "max_cooking_time": integer|null,
  "cuisine_preference": string|null
}

Rules:
- Include ONLY ingredients the user explicitly mentions.
- expiry_date ONLY if user explicitly provides a date; else null.
- days_threshold default 5; if user says "urgent/1-2 days" use 2-3.
- Do not invent items or dates.`

// Planner builds waste-reduction plans. Now is injectable for tests and
// defaults to time.Now.
type Planner struct {
	LLM llm.Client
	Now func() time.Time
}

// Run extracts inventory from the user message, classifies it by urgency and
// asks the model for a plan. An empty inventory short-circuits to a fixed
// clarification with no plan call.
func (p *Planner) Run(ctx context.Context, userMessage string) (string, error) {
	ctx = llm.WithStage(ctx, "waste_extract")
	raw, err := p.LLM.GenerateJSON(ctx, extractPrompt, map[string]string{"user_message": userMessage})
	if err != nil {
		return "", fmt.Errorf("wasteplan: extract inventory: %w", err)
	}
	var in Input
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", fmt.Errorf("wasteplan: decode inventory: %w", err)
	}
	if in.DaysThreshold <= 0 {
		in.DaysThreshold = DefaultDaysThreshold
	}

	inventory := make([]InventoryItem, 0, len(in.Inventory))
	for _, item := range in.Inventory {
		if strings.TrimSpace(item.Ingredient) != "" {
			inventory = append(inventory, item)
		}
	}
	if len(inventory) == 0 {
		return AskInventoryMessage, nil
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	plan := Prioritize(inventory, in.DaysThreshold, now())

	ctx = llm.WithStage(ctx, "waste_plan")
	out, err := p.LLM.GenerateText(ctx, planPrompt(plan, in.CuisinePreference, in.MaxCookingTime))
	if err != nil {
		return "", fmt.Errorf("wasteplan: generate plan: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Prioritize classifies inventory by days until expiry relative to now.
// Items expiring within daysThreshold days are urgent; items without a
// parseable date land in UnknownExpiry. Dated buckets are sorted soonest
// first.
func Prioritize(inventory []InventoryItem, daysThreshold int, now time.Time) Classification {
	// Day difference counts calendar days in now's location, so an evening in
	// a western zone does not roll the reference day forward to the UTC date.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var out Classification

	for _, item := range inventory {
		ing := strings.ToLower(strings.TrimSpace(item.Ingredient))
		if ing == "" {
			continue
		}
		exp, ok := parseDate(item.ExpiryDate)
		if !ok {
			out.UnknownExpiry = append(out.UnknownExpiry, ClassifiedItem{Ingredient: ing})
			continue
		}
		daysLeft := int(exp.Sub(today).Hours() / 24)
		row := ClassifiedItem{
			Ingredient: ing,
			ExpiryDate: exp.Format("2006-01-02"),
			DaysLeft:   daysLeft,
		}
		if daysLeft <= daysThreshold {
			out.Urgent = append(out.Urgent, row)
		} else {
			out.NonUrgent = append(out.NonUrgent, row)
		}
	}

	sort.SliceStable(out.Urgent, func(i, j int) bool { return out.Urgent[i].DaysLeft < out.Urgent[j].DaysLeft })
	sort.SliceStable(out.NonUrgent, func(i, j int) bool { return out.NonUrgent[i].DaysLeft < out.NonUrgent[j].DaysLeft })
	return out
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func planPrompt(plan Classification, cuisine string, maxTime *int) string {
	urgent, _ := json.Marshal(plan.Urgent)
	unknown, _ := json.Marshal(plan.UnknownExpiry)
	nonUrgent, _ := json.Marshal(plan.NonUrgent)

	var b strings.Builder
	b.WriteString("You are a waste-reduction assistant. Create an actionable plan to reduce food waste.\n\n")
	b.WriteString("Inventory classification:\n")
	fmt.Fprintf(&b, "- Urgent (use first): %s\n", urgent)
	fmt.Fprintf(&b, "- Unknown expiry: %s\n", unknown)
	fmt.Fprintf(&b, "- Non-urgent: %s\n\n", nonUrgent)
	b.WriteString("Preferences:\n")
	fmt.Fprintf(&b, "- Cuisine: %s\n", stringOrNone(cuisine))
	fmt.Fprintf(&b, "- Max cooking time: %s\n\n", minutesOrNone(maxTime))
	b.WriteString("Return a concise response with EXACTLY these sections:\n\n")
	fmt.Fprintf(&b, "USE-FIRST (next %d items):\n", len(plan.Urgent))
	b.WriteString("- <ingredient> (expires <date>, <days_left> days left)\n...\n\n")
	b.WriteString("ACTIONS (storage + prep):\n- ...\n- ...\n\n")
	b.WriteString("2-DAY MINI PLAN:\nDay 1: ...\nDay 2: ...\n\n")
	b.WriteString("Do NOT invent ingredients not in inventory.")
	return b.String()
}

func stringOrNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}

func minutesOrNone(m *int) string {
	if m == nil {
		return "none"
	}
	return fmt.Sprintf("%d minutes", *m)
}
