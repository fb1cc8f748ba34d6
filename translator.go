package quotelai

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/ZaguanLabs/quotelai/cache"
)

// Replay defaults for cached translations.
const (
	DefaultReplayChunkSize = 3
	DefaultReplayInterval  = 30 * time.Millisecond
)

// Translator is the streaming translation client.
type Translator struct {
	settings       SettingsSource
	provider       AIProvider
	cache          cache.TranslationCache
	logger         lgr.L
	replayChunk    int
	replayInterval time.Duration

	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
	requests      atomic.Int64
	failures      atomic.Int64
	skippedChunks atomic.Int64
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache.
func WithCache(c cache.TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = c
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l lgr.L) TranslatorOption {
	return func(t *Translator) {
		t.logger = l
	}
}

// WithReplayInterval sets the pause between replayed fragments of a cached translation.
// Zero replays without pauses.
func WithReplayInterval(d time.Duration) TranslatorOption {
	return func(t *Translator) {
		t.replayInterval = d
	}
}

// WithReplayChunkSize sets how many runes each replayed fragment carries.
func WithReplayChunkSize(n int) TranslatorOption {
	return func(t *Translator) {
		if n > 0 {
			t.replayChunk = n
		}
	}
}

// NewTranslator creates a Translator reading settings from src on every request.
// Without WithCache an in-memory cache of cache.MaxEntries entries is used.
func NewTranslator(src SettingsSource, provider AIProvider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		settings:       src,
		provider:       provider,
		logger:         lgr.NoOp,
		replayChunk:    DefaultReplayChunkSize,
		replayInterval: DefaultReplayInterval,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.cache == nil {
		t.cache = cache.NewBoundedCache(cache.MaxEntries)
	}

	return t
}

// Stream starts translating req.
//
// It returns ErrDisabled, ErrNoAPIKey or ErrSourceLanguage without touching the
// cache or the network when translation does not apply. A cached translation is
// replayed; otherwise a streaming completion is requested and its result is
// written to the cache once the stream finishes successfully.
func (t *Translator) Stream(ctx context.Context, req Request) (*Stream, error) {
	cfg, err := t.settings.Load(ctx)
	if err != nil {
		return nil, &ConfigError{Message: "loading settings", Cause: err}
	}

	switch {
	case !cfg.Enabled:
		return nil, ErrDisabled
	case cfg.APIKey == "":
		return nil, ErrNoAPIKey
	case req.TargetLang == "" || IsEnglish(req.TargetLang):
		return nil, ErrSourceLanguage
	}

	key := CacheKey(req.Text, req.Author, req.TargetLang)
	if cached, ok := t.cache.Get(key); ok {
		t.cacheHits.Add(1)
		t.logger.Logf("[DEBUG] cache hit for %q", key)
		return replayStream(ctx, cached, t.replayChunk, t.replayInterval), nil
	}
	t.cacheMisses.Add(1)

	streamCtx, cancel := context.WithCancel(ctx)
	reader, err := t.provider.StreamCompletion(streamCtx, CompletionRequest{
		Endpoint:     cfg.APIURL,
		APIKey:       cfg.APIKey,
		Model:        cfg.Model,
		Temperature:  cfg.Temperature,
		SystemPrompt: SystemPrompt(cfg.CustomPrompt, req),
		UserPrompt:   UserPrompt(req),
	})
	if err != nil {
		cancel()
		t.failures.Add(1)
		var perr *ProviderError
		var cerr *ConfigError
		if !errors.As(err, &perr) && !errors.As(err, &cerr) {
			err = &ProviderError{Message: "starting stream", Cause: err}
		}
		return nil, err
	}
	t.requests.Add(1)

	s := &Stream{
		fragments: make(chan string),
		done:      make(chan struct{}),
		cancel:    cancel,
	}
	go t.pump(streamCtx, s, reader, key)

	return s, nil
}

// pump forwards deltas from reader to s and writes the result through to the cache.
func (t *Translator) pump(ctx context.Context, s *Stream, reader ChunkReader, key string) {
	defer close(s.done)
	defer close(s.fragments)
	defer s.cancel()
	defer func() {
		_ = reader.Close()
		s.skipped = reader.Skipped()
		if s.skipped > 0 {
			t.skippedChunks.Add(int64(s.skipped))
			t.logger.Logf("[DEBUG] skipped %d malformed chunks for %q", s.skipped, key)
		}
	}()

	var b strings.Builder
	for {
		fragment, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.failures.Add(1)
			if ctx.Err() != nil {
				s.err = ctx.Err()
				return
			}
			var perr *ProviderError
			if !errors.As(err, &perr) {
				err = &ProviderError{Message: "reading stream", Cause: err}
			}
			s.err = err
			return
		}

		b.WriteString(fragment)
		select {
		case s.fragments <- fragment:
		case <-ctx.Done():
			t.failures.Add(1)
			s.err = ctx.Err()
			return
		}
	}

	s.text = b.String()
	if strings.TrimSpace(s.text) == "" {
		return
	}
	if err := t.cache.Put(key, s.text); err != nil {
		t.logger.Logf("[WARN] %v", &CacheError{Message: "storing translation", Cause: err})
	}
}

// ChunkFunc receives each fragment, then a final call with an empty fragment and done set.
type ChunkFunc func(fragment string, done bool)

// Translate translates req, passing fragments to onChunk as they arrive.
//
// It returns the full translation and true, or "" and false when translation is
// skipped or fails; failures are logged, never returned. With a nil onChunk a
// cached translation is returned without waiting for its replay.
func (t *Translator) Translate(ctx context.Context, req Request, onChunk ChunkFunc) (string, bool) {
	s, err := t.Stream(ctx, req)
	if err != nil {
		if IsShortCircuit(err) {
			t.logger.Logf("[DEBUG] translation skipped: %v", err)
		} else {
			t.logger.Logf("[WARN] translation failed: %v", err)
		}
		return "", false
	}

	if onChunk == nil {
		text, err := s.Result()
		if err != nil {
			t.logger.Logf("[WARN] translation failed: %v", err)
			return "", false
		}
		return text, true
	}

	for fragment := range s.Fragments() {
		onChunk(fragment, false)
	}

	text, err := s.Result()
	if err != nil {
		t.logger.Logf("[WARN] translation failed: %v", err)
		return "", false
	}
	onChunk("", true)
	return text, true
}

// Cached returns the cached translation for req without any network call.
func (t *Translator) Cached(req Request) (string, bool) {
	return t.cache.Get(CacheKey(req.Text, req.Author, req.TargetLang))
}

// Stats returns a snapshot of the translator counters.
func (t *Translator) Stats() Stats {
	return Stats{
		CacheHits:     t.cacheHits.Load(),
		CacheMisses:   t.cacheMisses.Load(),
		Requests:      t.requests.Load(),
		Failures:      t.failures.Load(),
		SkippedChunks: t.skippedChunks.Load(),
	}
}
