package quotelai

import (
	"context"
	"time"
)

// Stream delivers the fragments of one translation.
//
// Fragments are received from Fragments until the channel is closed, which is the
// completion signal. Result returns the full text. Cache replays and live network
// streams share this type and differ only in pacing.
type Stream struct {
	fragments chan string
	done      chan struct{}
	cancel    context.CancelFunc

	// written before done is closed
	text    string
	err     error
	skipped int

	cached bool
}

// Fragments returns the fragment channel. It is closed when the stream ends.
func (s *Stream) Fragments() <-chan string {
	return s.fragments
}

// Done is closed once the result is known.
// For cache replays this happens before any fragment is delivered.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Result returns the full translation, waiting for a live stream to finish.
// Fragments not yet received are discarded.
func (s *Stream) Result() (string, error) {
	select {
	case <-s.done:
	default:
		for range s.fragments {
		}
		<-s.done
	}
	return s.text, s.err
}

// Cached reports whether the stream replays a cached translation.
func (s *Stream) Cached() bool {
	return s.cached
}

// Skipped returns the number of malformed event payloads dropped.
// Meaningful once Done is closed.
func (s *Stream) Skipped() int {
	<-s.done
	return s.skipped
}

// Cancel stops the stream. A live stream ends with the context error.
func (s *Stream) Cancel() {
	s.cancel()
}

// replayStream returns a stream whose result is text, replayed as fixed-size rune slices.
// The fragment channel holds every slice, so the replay never blocks on a slow reader.
func replayStream(ctx context.Context, text string, size int, interval time.Duration) *Stream {
	parts := splitRunes(text, size)
	ctx, cancel := context.WithCancel(ctx)

	s := &Stream{
		fragments: make(chan string, len(parts)),
		done:      make(chan struct{}),
		cancel:    cancel,
		text:      text,
		cached:    true,
	}
	close(s.done)

	go func() {
		defer cancel()
		defer close(s.fragments)

		var tick <-chan time.Time
		if interval > 0 {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for i, part := range parts {
			if i > 0 && tick != nil {
				select {
				case <-tick:
				case <-ctx.Done():
					return
				}
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
			s.fragments <- part
		}
	}()

	return s
}

// splitRunes cuts text into slices of at most size runes.
func splitRunes(text string, size int) []string {
	if size <= 0 {
		size = 1
	}
	runes := []rune(text)
	parts := make([]string, 0, (len(runes)+size-1)/size)
	for i := 0; i < len(runes); i += size {
		end := min(i+size, len(runes))
		parts = append(parts, string(runes[i:end]))
	}
	return parts
}
