// Package gemini implements the generateContent backend. It is the
// fallback behind OpenAI and lacks a native structured-output mode, so
// JSON completions append an explicit instruction and tolerantly extract
// the object from the raw text.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/studyhall/studyhall-server/internal/ai"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// jsonInstruction is appended as a trailing user message in JSON mode.
const jsonInstruction = "Please format your response as a valid JSON object with no explanations or text outside the JSON."

type Backend struct {
	client *resty.Client
	apiKey string
	model  string
}

// New creates a Gemini backend for the given API key and model.
func New(apiKey, model string) *Backend {
	c := resty.New().
		SetBaseURL(defaultBaseURL).
		SetHeader("Content-Type", "application/json")
	return &Backend{client: c, apiKey: apiKey, model: model}
}

// NewWithBaseURL is used by tests to point the backend at a stub server.
func NewWithBaseURL(apiKey, model, baseURL string) *Backend {
	b := New(apiKey, model)
	b.client.SetBaseURL(baseURL)
	return b
}

func (b *Backend) Name() string { return "Gemini" }

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (b *Backend) Complete(ctx context.Context, msgs []ai.Message) (string, error) {
	return b.call(ctx, msgs)
}

// CompleteJSON demands JSON-only output and slices the object out of
// whatever conversational wrapper the model adds anyway.
func (b *Backend) CompleteJSON(ctx context.Context, msgs []ai.Message) ([]byte, error) {
	withFormat := append(append([]ai.Message(nil), msgs...), ai.Message{
		Role:    ai.RoleUser,
		Content: jsonInstruction,
	})
	text, err := b.call(ctx, withFormat)
	if err != nil {
		return nil, err
	}
	return []byte(ai.ExtractJSON(text)), nil
}

func (b *Backend) call(ctx context.Context, msgs []ai.Message) (string, error) {
	req := generateRequest{}
	for _, m := range msgs {
		// Gemini only knows user and model turns.
		role := "model"
		if m.Role == ai.RoleUser {
			role = "user"
		}
		req.Contents = append(req.Contents, content{Role: role, Parts: []part{{Text: m.Content}}})
	}

	resp, err := b.client.R().
		SetContext(ctx).
		SetQueryParam("key", b.apiKey).
		SetBody(&req).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", b.model))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode(), resp.String())
	}

	var gr generateResponse
	if err := json.Unmarshal(resp.Body(), &gr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if gr.Error != nil {
		return "", fmt.Errorf("gemini error: %s", gr.Error.Message)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}
