package provider

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"
)

// sseReader reads chat-completion deltas from a server-sent event stream.
// Lines without the data prefix are ignored; payloads that fail to decode are
// counted and skipped.
type sseReader struct {
	body    io.ReadCloser
	reader  *bufio.Reader
	skipped int
	onSkip  func(payload string, err error)
	eof     bool
}

func newSSEReader(body io.ReadCloser, onSkip func(string, error)) *sseReader {
	return &sseReader{
		body:   body,
		reader: bufio.NewReader(body),
		onSkip: onSkip,
	}
}

// Recv returns the next non-empty content delta.
func (r *sseReader) Recv() (string, error) {
	for !r.eof {
		line, err := r.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if errors.Is(err, io.EOF) {
			r.eof = true
		}

		content, finished := r.parseLine(line)
		if finished {
			r.eof = true
			break
		}
		if content != "" {
			return content, nil
		}
	}
	return "", io.EOF
}

// parseLine extracts the delta content of one event line.
func (r *sseReader) parseLine(line string) (content string, finished bool) {
	line = strings.TrimRight(line, "\r\n")
	payload, ok := strings.CutPrefix(line, dataPrefix)
	if !ok {
		return "", false
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", false
	}
	if payload == doneSentinel {
		return "", true
	}

	var chunk openai.ChatCompletionStreamResponse
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		r.skipped++
		if r.onSkip != nil {
			r.onSkip(payload, err)
		}
		return "", false
	}
	if len(chunk.Choices) == 0 {
		return "", false
	}
	return chunk.Choices[0].Delta.Content, false
}

// Skipped returns the number of malformed payloads seen so far.
func (r *sseReader) Skipped() int {
	return r.skipped
}

// Close closes the response body.
func (r *sseReader) Close() error {
	return r.body.Close()
}
