package quotelai

import (
	"context"

	"github.com/ZaguanLabs/quotelai/settings"
)

// Request identifies a quote to translate.
type Request struct {
	Text       string // Quote text in the source language
	Author     string // Optional author; when set the model translates both
	TargetLang string // Target language code (e.g., "fr", "pt_BR", "zh-CN")
}

// CompletionRequest is one chat-completion call against the configured endpoint.
type CompletionRequest struct {
	Endpoint     string // Full chat-completions URL
	APIKey       string // Sent as a bearer token
	Model        string
	Temperature  float32
	SystemPrompt string
	UserPrompt   string
}

// Completion is the outcome of a non-streaming completion.
type Completion struct {
	Content string // Content of the first choice
	Choices int    // Number of choices returned
}

// ChunkReader yields content deltas of a streaming completion.
type ChunkReader interface {
	// Recv returns the next non-empty content delta, or io.EOF once the stream finished.
	Recv() (string, error)

	// Skipped reports how many event payloads could not be parsed so far.
	Skipped() int

	Close() error
}

// AIProvider is the interface for chat-completion backends.
type AIProvider interface {
	StreamCompletion(ctx context.Context, req CompletionRequest) (ChunkReader, error)
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

// SettingsSource supplies the current settings on every call.
type SettingsSource interface {
	Load(ctx context.Context) (settings.Settings, error)
}

// Stats is a point-in-time copy of translator counters.
type Stats struct {
	CacheHits     int64 // Requests answered from the cache
	CacheMisses   int64 // Requests that went to the network
	Requests      int64 // Streaming requests accepted by the provider
	Failures      int64 // Provider or stream failures
	SkippedChunks int64 // Malformed event payloads dropped mid-stream
}
