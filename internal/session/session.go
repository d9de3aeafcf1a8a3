// Package session keeps per-conversation state in memory and serializes
// message handling per session.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"platewise/internal/agent"
	"platewise/internal/recipe"
)

// ErrNotFound reports an unknown session id.
var ErrNotFound = errors.New("session: not found")

// Session is one conversation. State is mutated only through the service so
// a failed turn never leaves a partial update behind.
type Session struct {
	ID     string
	UserID string

	mu    sync.Mutex
	state recipe.State
}

// State returns a snapshot of the conversation state.
func (s *Session) State() recipe.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Service is the in-memory session registry.
type Service struct {
	agent *agent.Manager

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewService(m *agent.Manager) *Service {
	return &Service{
		agent:    m,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session. When userID is empty a short random one is
// assigned.
func (s *Service) Create(userID string) *Session {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "user_" + randomHex()
	}
	sess := &Session{
		ID:     randomHex(),
		UserID: userID,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get looks up a session by id.
func (s *Service) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[strings.TrimSpace(id)]
	return sess, ok
}

// HandleMessage runs one user turn through the agent manager. Turns within a
// session are serialized; the session state is replaced only when the turn
// succeeds.
func (s *Service) HandleMessage(ctx context.Context, sessionID, text string) (string, error) {
	sess, ok := s.Get(sessionID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("session: empty message")
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, reply, err := s.agent.Respond(ctx, sess.state, text)
	if err != nil {
		return "", err
	}
	sess.state = next
	return reply, nil
}

func randomHex() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("session: read random bytes: %v", err))
	}
	return hex.EncodeToString(b[:])
}
