package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
	rl    *rpsLimiter
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI, APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	// Optional RPS limiter via env: LLM_RPS/LLM_BURST.
	var rps float64
	var burst int
	if v := os.Getenv("LLM_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			rps = f
		}
	}
	if v := os.Getenv("LLM_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			burst = n
		}
	}
	return &GeminiClient{cli: cli, model: model, rl: newRPSLimiter(rps, burst)}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

func (g *GeminiClient) Close() error {
	if g.rl != nil {
		g.rl.Stop()
	}
	return nil
}

// GenerateJSON sends the prompt plus the JSON-encoded input and requests
// application/json back.
func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	full := prompt
	if input != nil {
		in, _ := json.MarshalIndent(input, "", "  ")
		full = prompt + "\n\n[INPUT JSON]\n" + string(in)
	}
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	text, err := g.generate(ctx, full, cfg)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(text), nil
}

// GenerateText sends the prompt as-is and returns the completion text.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, nil)
}

func (g *GeminiClient) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	stage := StageFrom(ctx)
	log.Printf("LLM request (%s): %d bytes", stage, len(prompt))

	return retryText(3, time.Sleep, func() (string, error) {
		// Each API call consumes a limiter token.
		if err := g.rl.Acquire(ctx); err != nil {
			return "", err
		}
		resp, err := g.cli.Models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
			cfg,
		)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", ErrEmptyResponse
		}
		return resp.Candidates[0].Content.Parts[0].Text, nil
	})
}

// retryText runs fn up to attempts times with exponential backoff between
// failures. No sleep follows the final attempt, and a context error (which is
// what the rate limiter returns when canceled) stops the retries immediately.
func retryText(attempts int, sleep func(time.Duration), fn func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		out, err := fn()
		if err == nil {
			return out, nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
		if attempt+1 < attempts {
			sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
		}
	}
	return "", lastErr
}
