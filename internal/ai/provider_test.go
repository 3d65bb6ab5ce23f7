package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
)

type fakeBackend struct {
	name      string
	reply     string
	jsonReply string
	fail      bool
	calls     int
	jsonCalls int
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Complete(_ context.Context, _ []Message) (string, error) {
	f.calls++
	if f.fail {
		return "", fmt.Errorf("%s down", f.name)
	}
	return f.reply, nil
}

func (f *fakeBackend) CompleteJSON(_ context.Context, _ []Message) ([]byte, error) {
	f.jsonCalls++
	if f.fail {
		return nil, fmt.Errorf("%s down", f.name)
	}
	return []byte(ExtractJSON(f.jsonReply)), nil
}

func newTestProvider(backends ...Backend) *Provider {
	return NewProvider(zerolog.Nop(), 0, backends...)
}

func TestProvider_Selection(t *testing.T) {
	primary := &fakeBackend{name: "OpenAI"}
	secondary := &fakeBackend{name: "Gemini"}

	cases := []struct {
		name        string
		backends    []Backend
		available   bool
		active      string
	}{
		{"both", []Backend{primary, secondary}, true, "OpenAI"},
		{"primary only", []Backend{primary}, true, "OpenAI"},
		{"secondary only", []Backend{secondary}, true, "Gemini"},
		{"none", nil, false, "None"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestProvider(tc.backends...)
			if p.Available() != tc.available {
				t.Fatalf("Available: want %v", tc.available)
			}
			if got := p.ActiveBackend(); got != tc.active {
				t.Fatalf("ActiveBackend: want %q got %q", tc.active, got)
			}
		})
	}
}

func TestProvider_NoBackendFailsImmediately(t *testing.T) {
	p := newTestProvider()
	if _, err := p.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}); !errors.Is(err, ErrNoBackend) {
		t.Fatalf("want ErrNoBackend, got %v", err)
	}
	var out map[string]any
	if err := p.CompleteJSON(context.Background(), nil, &out); !errors.Is(err, ErrNoBackend) {
		t.Fatalf("want ErrNoBackend, got %v", err)
	}
}

func TestProvider_FallbackOnPrimaryFailure(t *testing.T) {
	primary := &fakeBackend{name: "OpenAI", fail: true}
	secondary := &fakeBackend{name: "Gemini", reply: "from gemini"}
	p := newTestProvider(primary, secondary)

	out, err := p.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "from gemini" {
		t.Fatalf("want secondary result, got %q", out)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("want exactly one call each, got %d/%d", primary.calls, secondary.calls)
	}
}

func TestProvider_BothBackendsFail(t *testing.T) {
	primary := &fakeBackend{name: "OpenAI", fail: true}
	secondary := &fakeBackend{name: "Gemini", fail: true}
	p := newTestProvider(primary, secondary)

	out, err := p.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err == nil || out != "" {
		t.Fatalf("want error, got %q / %v", out, err)
	}
	var ie *InvocationError
	if !errors.As(err, &ie) {
		t.Fatalf("want InvocationError, got %T", err)
	}
	if ie.Backend != "Gemini" || !ie.FallbackAttempted {
		t.Fatalf("unexpected invocation error: %+v", ie)
	}
	// Original failures stay attached for diagnostics.
	if ie.Err == nil {
		t.Fatalf("underlying errors dropped")
	}
}

func TestProvider_SecondaryNotTriedOnPrimarySuccess(t *testing.T) {
	primary := &fakeBackend{name: "OpenAI", reply: "from openai"}
	secondary := &fakeBackend{name: "Gemini", reply: "from gemini"}
	p := newTestProvider(primary, secondary)

	out, err := p.Complete(context.Background(), nil)
	if err != nil || out != "from openai" {
		t.Fatalf("got %q / %v", out, err)
	}
	if secondary.calls != 0 {
		t.Fatalf("secondary should not be called")
	}
}

func TestProvider_CompleteJSONExtractionTolerance(t *testing.T) {
	b := &fakeBackend{
		name:      "Gemini",
		jsonReply: `Sure! Here you go: {"flashcards":[{"question":"Q","answer":"A"}]} Hope that helps!`,
	}
	p := newTestProvider(b)

	var out struct {
		Flashcards []struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
		} `json:"flashcards"`
	}
	if err := p.CompleteJSON(context.Background(), nil, &out); err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if len(out.Flashcards) != 1 || out.Flashcards[0].Question != "Q" || out.Flashcards[0].Answer != "A" {
		t.Fatalf("unexpected decode: %+v", out)
	}
}

func TestProvider_CompleteJSONParseFailure(t *testing.T) {
	b := &fakeBackend{name: "Gemini", jsonReply: "no json here at all"}
	p := newTestProvider(b)

	var out map[string]any
	err := p.CompleteJSON(context.Background(), nil, &out)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParseError, got %v", err)
	}
	if pe.Backend != "Gemini" {
		t.Fatalf("unexpected backend: %s", pe.Backend)
	}
}

func TestProvider_CompleteJSONMalformedPrimaryFallsBack(t *testing.T) {
	primary := &fakeBackend{name: "OpenAI", jsonReply: "{broken"}
	secondary := &fakeBackend{name: "Gemini", jsonReply: `{"ok":true}`}
	p := newTestProvider(primary, secondary)

	var out struct {
		OK bool `json:"ok"`
	}
	if err := p.CompleteJSON(context.Background(), nil, &out); err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if !out.OK {
		t.Fatalf("fallback result not decoded")
	}
	if primary.jsonCalls != 1 || secondary.jsonCalls != 1 {
		t.Fatalf("want one attempt each, got %d/%d", primary.jsonCalls, secondary.jsonCalls)
	}
}
