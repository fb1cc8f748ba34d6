package quotelai

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/ZaguanLabs/quotelai/quotes"
	"github.com/ZaguanLabs/quotelai/settings"
)

func prefetchSettings() settings.Settings {
	cfg := enabledSettings()
	cfg.Prefetch = true
	return cfg
}

var testQuotes = quotes.Collection{
	"en": {{Text: "Hello"}},
	"fr": {{Text: "Hello", Author: "Voltaire"}},
}

func TestPrefetcher_Run(t *testing.T) {
	provider := newMockProvider()
	tr := NewTranslator(settings.Static(prefetchSettings()), provider)
	p := NewPrefetcher(tr, testQuotes, WithPrefetchDelay(0))

	if err := p.Run(context.Background(), "fr"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if provider.callCount() != 1 {
		t.Errorf("Expected 1 provider call, got %d", provider.callCount())
	}
	if got, ok := tr.Cached(Request{Text: "Hello", Author: "Voltaire", TargetLang: "fr"}); !ok || got != "Bonjour | Voltaire" {
		t.Errorf("Prefetch should fill the cache, got (%q, %v)", got, ok)
	}

	if err := p.Run(context.Background(), "fr"); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if provider.callCount() != 1 {
		t.Errorf("Cached quote should not be fetched again, got %d calls", provider.callCount())
	}
}

func TestPrefetcher_FallbackQuotes(t *testing.T) {
	provider := newMockProvider()
	tr := NewTranslator(settings.Static(prefetchSettings()), provider)
	p := NewPrefetcher(tr, testQuotes, WithPrefetchDelay(0), WithPrefetchRand(rand.New(rand.NewPCG(1, 2))))

	if err := p.Run(context.Background(), "de"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, ok := tr.Cached(Request{Text: "Hello", TargetLang: "de"}); !ok {
		t.Error("Default-language quote should be prefetched for de")
	}
}

func TestPrefetcher_Gated(t *testing.T) {
	noPrefetch := enabledSettings()
	disabled := prefetchSettings()
	disabled.Enabled = false
	noKey := prefetchSettings()
	noKey.APIKey = ""

	tests := []struct {
		name string
		cfg  settings.Settings
		lang string
	}{
		{"prefetch off", noPrefetch, "fr"},
		{"translation off", disabled, "fr"},
		{"no api key", noKey, "fr"},
		{"english", prefetchSettings(), "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newMockProvider()
			p := NewPrefetcher(NewTranslator(settings.Static(tt.cfg), provider), testQuotes, WithPrefetchDelay(time.Millisecond))

			if err := p.Run(context.Background(), tt.lang); err != nil {
				t.Errorf("Run should be a silent no-op, got %v", err)
			}
			if provider.callCount() != 0 {
				t.Errorf("Expected no provider calls, got %d", provider.callCount())
			}
		})
	}
}

func TestPrefetcher_NoQuotes(t *testing.T) {
	provider := newMockProvider()
	p := NewPrefetcher(NewTranslator(settings.Static(prefetchSettings()), provider), quotes.Collection{}, WithPrefetchDelay(0))

	if err := p.Run(context.Background(), "fr"); err != nil {
		t.Errorf("Run failed: %v", err)
	}
	if provider.callCount() != 0 {
		t.Error("Nothing to prefetch")
	}
}

func TestPrefetcher_Limit(t *testing.T) {
	provider := newMockProvider()
	tr := NewTranslator(settings.Static(prefetchSettings()), provider, WithCache(failingCache{}))
	p := NewPrefetcher(tr, testQuotes, WithPrefetchDelay(0), WithPrefetchLimit(RateLimitConfig{RequestsPerMinute: 1}))

	for range 3 {
		if err := p.Run(context.Background(), "fr"); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	}
	if provider.callCount() != 1 {
		t.Errorf("Expected the limiter to allow 1 call, got %d", provider.callCount())
	}
}

func TestPrefetcher_DelayCancelled(t *testing.T) {
	provider := newMockProvider()
	p := NewPrefetcher(NewTranslator(settings.Static(prefetchSettings()), provider), testQuotes, WithPrefetchDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx, "fr") }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
	if provider.callCount() != 0 {
		t.Error("Cancelled prefetch must not call the provider")
	}
}

func TestPrefetcher_Trigger(t *testing.T) {
	provider := newMockProvider()
	provider.err = errors.New("offline")
	tr := NewTranslator(settings.Static(prefetchSettings()), provider)
	p := NewPrefetcher(tr, testQuotes, WithPrefetchDelay(5*time.Millisecond))

	select {
	case <-p.Trigger(context.Background(), "fr"):
	case <-time.After(time.Second):
		t.Fatal("Trigger did not finish")
	}
	if provider.callCount() != 1 {
		t.Errorf("Expected 1 provider call, got %d", provider.callCount())
	}
}
