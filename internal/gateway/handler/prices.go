package handler

import (
	"net/http"
	"strings"

	"platewise/internal/repository/prices"
)

type PricesHandler struct {
	store *prices.Store
}

func NewPricesHandler(store *prices.Store) *PricesHandler {
	return &PricesHandler{store: store}
}

// HandleBest returns the cheapest quote per ingredient. Ingredients come as
// a comma-separated ?ingredients= list; unknown ingredients get a null quote
// so the caller sees which lookups missed.
func (h *PricesHandler) HandleBest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	raw := strings.TrimSpace(r.URL.Query().Get("ingredients"))
	if raw == "" {
		http.Error(w, "ingredients is required", http.StatusBadRequest)
		return
	}

	type result struct {
		Ingredient string        `json:"ingredient"`
		Quote      *prices.Quote `json:"quote"`
	}
	var results []result
	for _, ing := range strings.Split(raw, ",") {
		ing = strings.ToLower(strings.TrimSpace(ing))
		if ing == "" {
			continue
		}
		q, ok := h.store.Best(ing)
		if !ok {
			results = append(results, result{Ingredient: ing})
			continue
		}
		results = append(results, result{Ingredient: ing, Quote: &q})
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
