package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/ZaguanLabs/quotelai"
)

// OpenAIProvider talks to any OpenAI-compatible chat-completions endpoint.
// Endpoint and credentials come with every request, so one provider serves
// changing settings.
type OpenAIProvider struct {
	httpClient *http.Client
	userAgent  string
	logger     lgr.L
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	HTTPClient *http.Client  // Custom client (optional)
	Timeout    time.Duration // Client timeout when HTTPClient is nil (default: none, streams are long-lived)
	Logger     lgr.L         // Diagnostics for skipped stream payloads (optional)
}

// NewOpenAIProvider creates a new OpenAI-compatible provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = lgr.NoOp
	}

	return &OpenAIProvider{
		httpClient: client,
		userAgent:  quotelai.UserAgent(),
		logger:     logger,
	}
}

// chatRequest is the wire body of a chat-completion call.
// Temperature is always sent, including zero.
type chatRequest struct {
	Model               string                         `json:"model"`
	Messages            []openai.ChatCompletionMessage `json:"messages"`
	Stream              bool                           `json:"stream"`
	Temperature         float32                        `json:"temperature"`
	MaxTokens           int                            `json:"max_tokens,omitempty"`
	MaxCompletionTokens int                            `json:"max_completion_tokens,omitempty"`
}

// StreamCompletion posts a streaming chat-completion request and returns a reader
// over its content deltas.
func (p *OpenAIProvider) StreamCompletion(ctx context.Context, req CompletionRequest) (quotelai.ChunkReader, error) {
	resp, err := p.post(ctx, req.Endpoint, req.APIKey, "text/event-stream", chatRequest{
		Model:       req.Model,
		Messages:    messages(req),
		Stream:      true,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	return newSSEReader(resp.Body, func(payload string, err error) {
		p.logger.Logf("[DEBUG] skipping malformed stream payload %q: %v", abbreviate(payload, 200), err)
	}), nil
}

// completeMaxTokens keeps non-streaming completions minimal.
const completeMaxTokens = 5

// Complete sends a minimal non-streaming chat completion to the configured endpoint.
// The body has the same shape as a streaming request, with a token cap added.
func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (*quotelai.Completion, error) {
	body := chatRequest{
		Model:       req.Model,
		Messages:    messages(req),
		Temperature: req.Temperature,
	}
	if isReasoningModel(req.Model) {
		body.MaxCompletionTokens = completeMaxTokens
	} else {
		body.MaxTokens = completeMaxTokens
	}

	resp, err := p.post(ctx, req.Endpoint, req.APIKey, "application/json", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out openai.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &quotelai.ProviderError{Message: "decoding response", Cause: err}
	}

	completion := &quotelai.Completion{Choices: len(out.Choices)}
	if len(out.Choices) > 0 {
		completion.Content = out.Choices[0].Message.Content
	}
	return completion, nil
}

// post sends body to endpoint and returns the response of a 2xx reply.
// Requests that cannot be built are ConfigErrors; everything after that is a ProviderError.
func (p *OpenAIProvider) post(ctx context.Context, endpoint, apiKey, accept string, body chatRequest) (*http.Response, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &quotelai.ConfigError{Message: fmt.Sprintf("invalid endpoint %q", endpoint), Cause: err}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, &quotelai.ConfigError{Message: "encoding request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(data))
	if err != nil {
		return nil, &quotelai.ConfigError{Message: "building request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", accept)
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, &quotelai.ProviderError{Message: "request failed", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, &quotelai.ProviderError{
			Message:    errorMessage(resp.Body),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}
	return resp, nil
}

// isReasoningModel reports whether model takes max_completion_tokens instead of max_tokens.
func isReasoningModel(model string) bool {
	name := strings.ToLower(model)
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
		if name == prefix || strings.HasPrefix(name, prefix+"-") {
			return true
		}
	}
	return false
}

func messages(req CompletionRequest) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
	}
}

// errorMessage extracts the API error message from a failed response body.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return "request failed"
	}

	var errResp openai.ErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return abbreviate(strings.TrimSpace(string(data)), 500)
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

var _ AIProvider = (*OpenAIProvider)(nil)
