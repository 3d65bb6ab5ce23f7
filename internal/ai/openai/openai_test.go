package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/studyhall/studyhall-server/internal/ai"
)

func TestComplete_RemapsSystemRole(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	}))
	defer srv.Close()

	b := NewWithBaseURL("test-key", "gpt-4o", srv.URL)
	out, err := b.Complete(context.Background(), []ai.Message{
		{Role: ai.RoleSystem, Content: "be helpful"},
		{Role: ai.RoleUser, Content: "hi"},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "hello" {
		t.Fatalf("unexpected reply %q", out)
	}
	if gotReq.Model != "gpt-4o" {
		t.Fatalf("model not sent: %+v", gotReq)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "assistant" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("role remap failed: %+v", gotReq.Messages)
	}
	if gotReq.ResponseFormat != nil {
		t.Fatalf("free-text completion must not request a response format")
	}
}

func TestCompleteJSON_UsesNativeJSONMode(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	b := NewWithBaseURL("test-key", "gpt-4o", srv.URL)
	raw, err := b.CompleteJSON(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "json please"}})
	if err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if string(raw) != `{"ok":true}` {
		t.Fatalf("unexpected payload %s", raw)
	}
	if gotReq.ResponseFormat == nil || gotReq.ResponseFormat.Type != "json_object" {
		t.Fatalf("native JSON mode not requested: %+v", gotReq.ResponseFormat)
	}
}

func TestComplete_SurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	b := NewWithBaseURL("test-key", "gpt-4o", srv.URL)
	if _, err := b.Complete(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "hi"}}); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}
