package factory

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/studyhall/studyhall-server/internal/config"
)

func TestNewCompletionProvider_PreferenceOrder(t *testing.T) {
	cases := []struct {
		name      string
		openai    string
		gemini    string
		available bool
		active    string
	}{
		{"both", "ok1", "ok2", true, "OpenAI"},
		{"openai only", "ok1", "", true, "OpenAI"},
		{"gemini only", "", "ok2", true, "Gemini"},
		{"none", "", "", false, "None"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.NewForTesting()
			cfg.OpenAIAPIKey = tc.openai
			cfg.GeminiAPIKey = tc.gemini

			p := NewCompletionProvider(cfg, zerolog.Nop())
			if p.Available() != tc.available {
				t.Fatalf("Available: want %v", tc.available)
			}
			if got := p.ActiveBackend(); got != tc.active {
				t.Fatalf("ActiveBackend: want %q got %q", tc.active, got)
			}
		})
	}
}
