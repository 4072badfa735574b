// Package llm defines the minimal client surface the pipeline needs from
// a text-generation backend.
package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

type Response struct {
	Content string
}

// Client makes a single completion call. Implementations own their own
// transport, timeouts included.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
