// Package provider abstracts the AI backend that drafts itineraries.
// The planning session only sees a streaming text interface; which model
// produces the text is a configuration detail.
package provider

import (
	"context"
	"fmt"

	"github.com/yuta-hayashi/tabiplan/internal/config"
	"github.com/yuta-hayashi/tabiplan/internal/conversation"
)

// Request is one completion request: a system prompt plus the
// conversation turns to continue.
type Request struct {
	System string
	Turns  []conversation.Turn
}

// Stream yields a completion incrementally. The usual loop:
//
//	for stream.Next() {
//	    use(stream.Text())
//	}
//	if err := stream.Err(); err != nil { ... }
type Stream interface {
	// Next advances to the next text chunk. Returns false when the
	// stream is exhausted or failed; check Err afterwards.
	Next() bool

	// Text returns the current chunk.
	Text() string

	// Err returns the terminal error, if any. A canceled context
	// surfaces here as well.
	Err() error

	// Close releases the underlying connection.
	Close() error
}

// Provider produces completions for planning conversations.
type Provider interface {
	// Name identifies the backend for logging and error context.
	Name() string

	// Stream starts a streaming completion. The context cancels the
	// stream mid-flight.
	Stream(ctx context.Context, req Request) (Stream, error)
}

// NewFromConfig builds the configured provider backend.
func NewFromConfig(cfg *config.ProviderConfig) (Provider, error) {
	switch cfg.Backend {
	case "openai":
		return NewOpenAI(cfg), nil
	case "scripted":
		return NewScripted(), nil
	default:
		return nil, fmt.Errorf("unknown provider backend %q", cfg.Backend)
	}
}
