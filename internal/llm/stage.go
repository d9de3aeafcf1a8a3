package llm

import "context"

type stageKey struct{}

// WithStage tags the context with the pipeline stage issuing the model call.
// Clients include the tag in request logs.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey{}, stage)
}

// StageFrom returns the stage tag, or "unknown" when the context has none.
func StageFrom(ctx context.Context) string {
	if v, ok := ctx.Value(stageKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
