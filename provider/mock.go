package provider

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/ZaguanLabs/quotelai"
)

// MockProvider is a mock chat-completion backend for testing.
// Responses are keyed by user prompt and streamed in Chunk-rune fragments.
type MockProvider struct {
	Responses map[string]string // User prompt to full response
	Chunk     int               // Fragment size in runes (default: 4)
	Err       error             // Returned by every call when set

	mu          sync.Mutex
	callCount   int
	lastRequest *CompletionRequest
}

// NewMockProvider creates a mock provider with a few French translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Responses: map[string]string{
			"Hello":                          "Bonjour",
			"Stay hungry, stay foolish.":     "Restez affamés, restez fous.",
			"Quote: Hello\nAuthor: Voltaire": "Bonjour | Voltaire",
		},
	}
}

// StreamCompletion streams the configured response.
func (m *MockProvider) StreamCompletion(_ context.Context, req CompletionRequest) (quotelai.ChunkReader, error) {
	text, err := m.record(req)
	if err != nil {
		return nil, err
	}

	size := m.Chunk
	if size <= 0 {
		size = 4
	}
	runes := []rune(text)
	var parts []string
	for i := 0; i < len(runes); i += size {
		parts = append(parts, string(runes[i:min(i+size, len(runes))]))
	}
	return &mockReader{parts: parts}, nil
}

// Complete returns the configured response as a single choice.
func (m *MockProvider) Complete(_ context.Context, req CompletionRequest) (*quotelai.Completion, error) {
	text, err := m.record(req)
	if err != nil {
		return nil, err
	}
	return &quotelai.Completion{Content: text, Choices: 1}, nil
}

// CallCount returns the number of calls received.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastRequest returns the last request received.
func (m *MockProvider) LastRequest() *CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// Reset clears the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastRequest = nil
}

func (m *MockProvider) record(req CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	m.lastRequest = &req

	if m.Err != nil {
		return "", m.Err
	}
	if text, ok := m.Responses[req.UserPrompt]; ok {
		return text, nil
	}
	// Bracketed text for unknown prompts
	return "[" + strings.ReplaceAll(req.UserPrompt, "\n", " ") + "]", nil
}

type mockReader struct {
	parts []string
	pos   int
}

func (r *mockReader) Recv() (string, error) {
	if r.pos >= len(r.parts) {
		return "", io.EOF
	}
	part := r.parts[r.pos]
	r.pos++
	return part, nil
}

func (r *mockReader) Skipped() int { return 0 }
func (r *mockReader) Close() error { return nil }

var _ AIProvider = (*MockProvider)(nil)
