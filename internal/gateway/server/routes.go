package server

import (
	"net/http"

	"platewise/internal/gateway/handler"
	"platewise/internal/gateway/middleware"
)

func NewMux(
	sessionHandler *handler.SessionHandler,
	chatHandler *handler.ChatHandler,
	pricesHandler *handler.PricesHandler,
	walletHandler *handler.WalletHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/sessions", sessionHandler.HandleCreate)
	mux.HandleFunc("/api/chat", chatHandler.HandleChat)
	mux.HandleFunc("/ws/chat", chatHandler.HandleChatWS)

	mux.HandleFunc("/api/prices/best", pricesHandler.HandleBest)
	mux.HandleFunc("/api/wallet/balance", walletHandler.HandleBalance)
	mux.HandleFunc("/api/wallet/deduct", walletHandler.HandleDeduct)

	return middleware.CORS(mux)
}
