package quotelai

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/ZaguanLabs/quotelai/cache"
	"github.com/ZaguanLabs/quotelai/settings"
)

// mockProvider streams canned responses keyed by user prompt
type mockProvider struct {
	responses map[string]string
	chunk     int
	err       error // returned by StreamCompletion and Complete
	streamErr error // returned by Recv after the first fragment
	skipped   int
	block     bool // Recv blocks after the first fragment until ctx is done
	choices   *int

	mu       sync.Mutex
	calls    int
	requests []CompletionRequest
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		responses: map[string]string{
			"Hello":                          "Bonjour",
			"Stay hungry, stay foolish.":     "Restez affamés, restez fous.",
			"Quote: Hello\nAuthor: Voltaire": "Bonjour | Voltaire",
		},
		chunk: 2,
	}
}

func (m *mockProvider) record(req CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	if text, ok := m.responses[req.UserPrompt]; ok {
		return text, nil
	}
	return "[" + req.UserPrompt + "]", nil
}

func (m *mockProvider) StreamCompletion(ctx context.Context, req CompletionRequest) (ChunkReader, error) {
	text, err := m.record(req)
	if err != nil {
		return nil, err
	}
	return &mockReader{
		ctx:       ctx,
		parts:     splitRunes(text, m.chunk),
		streamErr: m.streamErr,
		skipped:   m.skipped,
		block:     m.block,
	}, nil
}

func (m *mockProvider) Complete(_ context.Context, req CompletionRequest) (*Completion, error) {
	text, err := m.record(req)
	if err != nil {
		return nil, err
	}
	choices := 1
	if m.choices != nil {
		choices = *m.choices
	}
	return &Completion{Content: text, Choices: choices}, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockProvider) lastRequest() CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return CompletionRequest{}
	}
	return m.requests[len(m.requests)-1]
}

type mockReader struct {
	ctx       context.Context
	parts     []string
	pos       int
	streamErr error
	skipped   int
	block     bool
	closed    bool
}

func (r *mockReader) Recv() (string, error) {
	if r.pos > 0 && r.block {
		<-r.ctx.Done()
		return "", r.ctx.Err()
	}
	if r.pos > 0 && r.streamErr != nil {
		return "", r.streamErr
	}
	if r.pos >= len(r.parts) {
		return "", io.EOF
	}
	part := r.parts[r.pos]
	r.pos++
	return part, nil
}

func (r *mockReader) Skipped() int { return r.skipped }

func (r *mockReader) Close() error {
	r.closed = true
	return nil
}

// countingCache records how often the translator touches the cache
type countingCache struct {
	*cache.BoundedCache
	mu   sync.Mutex
	gets int
	puts int
}

func newCountingCache() *countingCache {
	return &countingCache{BoundedCache: cache.NewBoundedCache(cache.MaxEntries)}
}

func (c *countingCache) Get(key string) (string, bool) {
	c.mu.Lock()
	c.gets++
	c.mu.Unlock()
	return c.BoundedCache.Get(key)
}

func (c *countingCache) Put(key, translation string) error {
	c.mu.Lock()
	c.puts++
	c.mu.Unlock()
	return c.BoundedCache.Put(key, translation)
}

func (c *countingCache) counts() (gets, puts int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets, c.puts
}

// failingCache rejects every write
type failingCache struct{}

func (failingCache) Get(string) (string, bool) { return "", false }
func (failingCache) Put(string, string) error  { return errors.New("disk full") }

// failingSettings cannot be read
type failingSettings struct{}

func (failingSettings) Load(context.Context) (settings.Settings, error) {
	return settings.Settings{}, errors.New("store unavailable")
}

func enabledSettings() settings.Settings {
	cfg := settings.Defaults()
	cfg.Enabled = true
	cfg.APIKey = "sk-test"
	return cfg
}

// recordingRenderer keeps every call made by a Display
type recordingRenderer struct {
	mu      sync.Mutex
	visible []bool
	quotes  []string
	authors []string
}

func (r *recordingRenderer) SetVisible(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = append(r.visible, v)
}

func (r *recordingRenderer) RenderQuote(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes = append(r.quotes, text)
}

func (r *recordingRenderer) RenderAuthor(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authors = append(r.authors, text)
}

func (r *recordingRenderer) lastVisible() (bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.visible) == 0 {
		return false, false
	}
	return r.visible[len(r.visible)-1], true
}

func last(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[len(list)-1]
}
