package quotelai

import (
	"errors"
	"fmt"
)

// Short-circuit conditions. No cache lookup or network call happens when these are returned.
var (
	ErrDisabled       = errors.New("translation disabled")
	ErrNoAPIKey       = errors.New("no API key configured")
	ErrSourceLanguage = errors.New("target language is the source language")
)

// IsShortCircuit reports whether err means translation was skipped on purpose.
func IsShortCircuit(err error) bool {
	return errors.Is(err, ErrDisabled) || errors.Is(err, ErrNoAPIKey) || errors.Is(err, ErrSourceLanguage)
}

// ConfigError indicates the settings could not be read or are unusable.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a chat-completion failure.
// StatusCode is zero for transport failures that never produced a response.
type ProviderError struct {
	Message    string
	StatusCode int
	Status     string
	Cause      error
}

func (e *ProviderError) Error() string {
	msg := "provider error: " + e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("provider error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// IsHTTP reports whether the server answered with an error status.
func (e *ProviderError) IsHTTP() bool {
	return e.StatusCode != 0
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}
