// Package ai abstracts text-generation backends behind one provider with
// automatic failover. Backends are tried in a fixed preference order;
// a failed call is retried once against the next configured backend and
// never more than that.
package ai

import "context"

// Message roles understood by the provider. Backends remap them to their
// own vocabulary on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one role-tagged chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Backend is one external text-generation service.
type Backend interface {
	Name() string
	// Complete returns the free-text completion for the messages.
	Complete(ctx context.Context, msgs []Message) (string, error)
	// CompleteJSON returns raw bytes expected to hold a single JSON
	// object, using the backend's structured-output mode where one
	// exists and tolerant text extraction where it does not.
	CompleteJSON(ctx context.Context, msgs []Message) ([]byte, error)
}
