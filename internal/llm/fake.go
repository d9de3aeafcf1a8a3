package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// FakeClient returns scripted responses for offline runs and tests. JSON and
// Text replies are consumed in order; when a queue runs dry the last entry is
// repeated. Err, when set, fails every call.
type FakeClient struct {
	mu sync.Mutex

	JSON []json.RawMessage
	Text []string
	Err  error

	JSONCalls int
	TextCalls int
	Prompts   []string
}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateJSON(_ context.Context, prompt string, _ any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.JSONCalls++
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.JSON) == 0 {
		return json.RawMessage(`{}`), nil
	}
	out := f.JSON[0]
	if len(f.JSON) > 1 {
		f.JSON = f.JSON[1:]
	}
	return out, nil
}

func (f *FakeClient) GenerateText(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TextCalls++
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Text) == 0 {
		return "", nil
	}
	out := f.Text[0]
	if len(f.Text) > 1 {
		f.Text = f.Text[1:]
	}
	return out, nil
}

// Calls reports the total number of model invocations.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.JSONCalls + f.TextCalls
}
