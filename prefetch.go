package quotelai

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/ZaguanLabs/quotelai/quotes"
)

// Prefetch defaults.
const (
	DefaultPrefetchDelay     = 2 * time.Second
	DefaultPrefetchPerMinute = 10
)

// Prefetcher warms the cache with a random quote ahead of its display.
type Prefetcher struct {
	translator *Translator
	source     quotes.Source
	delay      time.Duration
	limiter    *RateLimiter
	logger     lgr.L

	rnd   *rand.Rand
	rndMu sync.Mutex
}

// PrefetchOption configures a Prefetcher.
type PrefetchOption func(*Prefetcher)

// WithPrefetchDelay sets how long Run waits before translating.
func WithPrefetchDelay(d time.Duration) PrefetchOption {
	return func(p *Prefetcher) {
		p.delay = d
	}
}

// WithPrefetchRand sets the random source used to pick quotes.
func WithPrefetchRand(rnd *rand.Rand) PrefetchOption {
	return func(p *Prefetcher) {
		p.rnd = rnd
	}
}

// WithPrefetchLimit caps prefetch requests.
func WithPrefetchLimit(cfg RateLimitConfig) PrefetchOption {
	return func(p *Prefetcher) {
		p.limiter = NewRateLimiter(cfg)
	}
}

// WithPrefetchLogger sets the logger used for diagnostics.
func WithPrefetchLogger(l lgr.L) PrefetchOption {
	return func(p *Prefetcher) {
		p.logger = l
	}
}

// NewPrefetcher creates a prefetcher drawing quotes from src.
func NewPrefetcher(t *Translator, src quotes.Source, opts ...PrefetchOption) *Prefetcher {
	p := &Prefetcher{
		translator: t,
		source:     src,
		delay:      DefaultPrefetchDelay,
		limiter:    NewRateLimiter(RateLimitConfig{RequestsPerMinute: DefaultPrefetchPerMinute}),
		logger:     lgr.NoOp,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Trigger runs a prefetch in the background. Failures are logged, never returned.
// The returned channel is closed when the prefetch is over.
func (p *Prefetcher) Trigger(ctx context.Context, lang string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := p.Run(ctx, lang); err != nil {
			p.logger.Logf("[WARN] prefetch for %s failed: %v", lang, err)
		}
	}()
	return done
}

// Run waits for the prefetch delay, then translates one random quote for lang
// without displaying it. It does nothing unless translation and prefetch are
// both enabled.
func (p *Prefetcher) Run(ctx context.Context, lang string) error {
	cfg, err := p.translator.settings.Load(ctx)
	if err != nil {
		return &ConfigError{Message: "loading settings", Cause: err}
	}
	if !cfg.Enabled || !cfg.Prefetch {
		return nil
	}

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	q, ok := p.pick(lang)
	if !ok {
		p.logger.Logf("[DEBUG] no quotes to prefetch for %s", lang)
		return nil
	}

	req := Request{Text: q.Text, Author: q.Author, TargetLang: lang}
	if _, cached := p.translator.Cached(req); cached {
		return nil
	}
	if !p.limiter.TryAcquire() {
		p.logger.Logf("[DEBUG] prefetch limit reached, skipping %s", lang)
		return nil
	}

	s, err := p.translator.Stream(ctx, req)
	if err != nil {
		if IsShortCircuit(err) {
			return nil
		}
		return err
	}
	if _, err := s.Result(); err != nil {
		return err
	}
	p.logger.Logf("[DEBUG] prefetched %q for %s", q.Text, lang)
	return nil
}

func (p *Prefetcher) pick(lang string) (quotes.Quote, bool) {
	list := p.source.Quotes(lang)
	p.rndMu.Lock()
	defer p.rndMu.Unlock()
	return quotes.Pick(list, p.rnd)
}
