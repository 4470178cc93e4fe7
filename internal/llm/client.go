// Package llm provides text-generation client implementations.
package llm

import "context"

// Message is a prior conversation turn passed to the generator.
type Message struct {
	Role    string `json:"role"` // system, user, or assistant
	Content string `json:"content"`
}

// Client is the interface all generation providers implement.
type Client interface {
	// Chat sends a system instruction, a per-turn task instruction, and
	// prior history, and returns the generated text, trimmed.
	Chat(ctx context.Context, system, user string, history []Message) (string, error)
}
