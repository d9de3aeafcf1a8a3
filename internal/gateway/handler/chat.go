package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"platewise/internal/session"
)

// ChatHandler serves one-shot chat turns over HTTP and multi-turn chat over
// a websocket.
type ChatHandler struct {
	sessions *session.Service
}

func NewChatHandler(sessions *session.Service) *ChatHandler {
	return &ChatHandler{sessions: sessions}
}

func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	sessionID := strings.TrimSpace(in.SessionID)
	message := strings.TrimSpace(in.Message)
	if sessionID == "" || message == "" {
		http.Error(w, "session_id and message are required", http.StatusBadRequest)
		return
	}

	reply, err := h.sessions.HandleMessage(r.Context(), sessionID, message)
	if errors.Is(err, session.ErrNotFound) {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("chat turn failed: %v", err)
		writeJSON(w, http.StatusOK, map[string]any{
			"session_id": sessionID,
			"reply":      TryAgainMessage,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"reply":      reply,
	})
}

const (
	chatWSWriteWait = 10 * time.Second
	chatWSPongWait  = 60 * time.Second
	chatWSPingEvery = (chatWSPongWait * 9) / 10
)

var chatWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type chatWSInbound struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type chatWSOutbound struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Reply     string `json:"reply,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
}

// HandleChatWS runs a chat conversation over a websocket. The session is
// given as ?session_id=; replies are pushed from a single writer goroutine.
func (h *ChatHandler) HandleChatWS(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}
	if _, ok := h.sessions.Get(sessionID); !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	conn, err := chatWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(chatWSPongWait)); err != nil {
		log.Printf("chat ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatWSPongWait))
	})

	writeCh := make(chan chatWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(chatWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	pushChatWS(writeCh, chatWSOutbound{Type: "connected", SessionID: sessionID})

	for {
		var in chatWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		msgType := strings.ToLower(strings.TrimSpace(in.Type))
		switch msgType {
		case "ping":
			pushChatWS(writeCh, chatWSOutbound{Type: "pong"})
		case "send":
			message := strings.TrimSpace(in.Message)
			if message == "" {
				pushChatWS(writeCh, chatWSOutbound{
					Type:    "error",
					Code:    "invalid_argument",
					Message: "message is required",
				})
				continue
			}
			reply, err := h.sessions.HandleMessage(ctx, sessionID, message)
			if err != nil {
				log.Printf("chat ws turn failed: %v", err)
				reply = TryAgainMessage
			}
			pushChatWS(writeCh, chatWSOutbound{
				Type:      "reply",
				SessionID: sessionID,
				Reply:     reply,
			})
		default:
			pushChatWS(writeCh, chatWSOutbound{
				Type:    "error",
				Code:    "invalid_argument",
				Message: "unsupported type: " + msgType,
			})
		}
	}
}

func pushChatWS(writeCh chan chatWSOutbound, out chatWSOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
