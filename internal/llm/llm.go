package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrInvalidJSON is returned when the model reply cannot be used as JSON.
var ErrInvalidJSON = errors.New("llm: invalid JSON from model")

// ErrEmptyResponse is returned when the model reply carries no text.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// Client is the language-model collaborator used by the recipe pipeline and
// the surrounding agents. GenerateJSON requests a strict-JSON reply for
// structured extraction; GenerateText returns the raw completion text.
type Client interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
	Close() error
}
