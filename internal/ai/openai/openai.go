// Package openai implements the chat-completions backend. It is the
// preferred backend when a key is configured and supports a native
// structured-output mode.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/studyhall/studyhall-server/internal/ai"
)

const defaultBaseURL = "https://api.openai.com"

type Backend struct {
	client *resty.Client
	model  string
}

// New creates an OpenAI backend for the given API key and model.
func New(apiKey, model string) *Backend {
	c := resty.New().
		SetBaseURL(defaultBaseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")
	return &Backend{client: c, model: model}
}

// NewWithBaseURL is used by tests to point the backend at a stub server.
func NewWithBaseURL(apiKey, model, baseURL string) *Backend {
	b := New(apiKey, model)
	b.client.SetBaseURL(baseURL)
	return b
}

func (b *Backend) Name() string { return "OpenAI" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the messages to the chat-completions endpoint. The
// abstraction's system role has no direct slot mid-conversation here, so
// it is carried as assistant.
func (b *Backend) Complete(ctx context.Context, msgs []ai.Message) (string, error) {
	out, err := b.call(ctx, msgs, nil)
	return out, err
}

// CompleteJSON constrains the model to emit a JSON object via the native
// response_format mode.
func (b *Backend) CompleteJSON(ctx context.Context, msgs []ai.Message) ([]byte, error) {
	out, err := b.call(ctx, msgs, &responseFormat{Type: "json_object"})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (b *Backend) call(ctx context.Context, msgs []ai.Message, format *responseFormat) (string, error) {
	req := chatRequest{Model: b.model, ResponseFormat: format}
	for _, m := range msgs {
		role := m.Role
		if role == ai.RoleSystem {
			role = ai.RoleAssistant
		}
		req.Messages = append(req.Messages, chatMessage{Role: role, Content: m.Content})
	}

	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(&req).
		Post("/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("openai status %d: %s", resp.StatusCode(), resp.String())
	}

	var cr chatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("openai error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return cr.Choices[0].Message.Content, nil
}
