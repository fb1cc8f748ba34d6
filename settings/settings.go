// Package settings reads and writes the translation settings record.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ZaguanLabs/quotelai/store"
)

// StorageKey is the store key holding the serialized settings record.
const StorageKey = "translationSettings"

// Settings is the user configuration for quote translation.
type Settings struct {
	Enabled      bool    `json:"enabled"`
	APIURL       string  `json:"apiUrl"`
	APIKey       string  `json:"apiKey"`
	Model        string  `json:"model"`
	Temperature  float32 `json:"temperature"`
	CustomPrompt string  `json:"customPrompt"`
	Prefetch     bool    `json:"prefetch"`
}

// Defaults returns the settings used when nothing has been saved yet.
func Defaults() Settings {
	return Settings{
		Enabled:     false,
		APIURL:      "https://api.openai.com/v1/chat/completions",
		Model:       "gpt-4o-mini",
		Temperature: 0.3,
	}
}

// Decode merges a serialized record onto the defaults.
// Fields absent from data keep their default values.
func Decode(data string) (Settings, error) {
	s := Defaults()
	if data == "" {
		return s, nil
	}
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return Defaults(), fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}

// Store loads and saves Settings through a KV backend.
type Store struct {
	kv store.KV
	mu sync.Mutex
}

// NewStore creates a settings store over kv.
func NewStore(kv store.KV) *Store {
	return &Store{kv: kv}
}

// Load returns the saved settings merged with defaults.
// A store with no record yields Defaults().
func (s *Store) Load(ctx context.Context) (Settings, error) {
	data, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), err
	}
	return Decode(data)
}

// Save replaces the stored record with cfg.
func (s *Store) Save(ctx context.Context, cfg Settings) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return s.kv.Set(ctx, StorageKey, string(data))
}

// Update loads the current record, applies fn and saves the result.
func (s *Store) Update(ctx context.Context, fn func(*Settings)) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.Load(ctx)
	if err != nil {
		return cfg, err
	}
	fn(&cfg)
	if err := s.Save(ctx, cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Static is a fixed settings source, handy for tests and one-shot CLI calls.
type Static Settings

// Load returns the fixed settings.
func (s Static) Load(context.Context) (Settings, error) {
	return Settings(s), nil
}
