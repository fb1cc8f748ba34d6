// Package provider implements chat-completion backends for quotelai.
package provider

import "github.com/ZaguanLabs/quotelai"

// AIProvider is the interface for chat-completion backends.
// This is an alias to the main package interface for convenience.
type AIProvider = quotelai.AIProvider

// CompletionRequest is an alias to the main package type.
type CompletionRequest = quotelai.CompletionRequest
