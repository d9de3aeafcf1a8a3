package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"platewise/internal/repository/wallet"
)

type WalletHandler struct {
	store *wallet.Store
}

func NewWalletHandler(store *wallet.Store) *WalletHandler {
	return &WalletHandler{store: store}
}

func (h *WalletHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	pin := strings.TrimSpace(r.URL.Query().Get("pin"))
	if userID == "" || pin == "" {
		http.Error(w, "user_id and pin are required", http.StatusBadRequest)
		return
	}
	if !h.store.Authenticate(userID, pin) {
		http.Error(w, "authentication failed", http.StatusUnauthorized)
		return
	}

	balance, err := h.store.Balance(userID)
	if err != nil {
		log.Printf("wallet balance failed: %v", err)
		http.Error(w, "wallet lookup failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":     userID,
		"balance_usd": balance,
	})
}

func (h *WalletHandler) HandleDeduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		UserID    string  `json:"user_id"`
		PIN       string  `json:"pin"`
		AmountUSD float64 `json:"amount_usd"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	userID := strings.TrimSpace(in.UserID)
	if userID == "" || strings.TrimSpace(in.PIN) == "" {
		http.Error(w, "user_id and pin are required", http.StatusBadRequest)
		return
	}
	if in.AmountUSD <= 0 {
		http.Error(w, "amount_usd must be positive", http.StatusBadRequest)
		return
	}
	if !h.store.Authenticate(userID, in.PIN) {
		http.Error(w, "authentication failed", http.StatusUnauthorized)
		return
	}

	balance, err := h.store.Deduct(userID, in.AmountUSD)
	switch {
	case errors.Is(err, wallet.ErrInsufficientFunds):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":       "insufficient_funds",
			"balance_usd": balance,
		})
		return
	case errors.Is(err, wallet.ErrNotFound):
		http.Error(w, "unknown user", http.StatusNotFound)
		return
	case err != nil:
		log.Printf("wallet deduct failed: %v", err)
		http.Error(w, "wallet update failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":     userID,
		"balance_usd": balance,
	})
}
