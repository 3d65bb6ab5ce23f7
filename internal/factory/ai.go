package factory

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/studyhall/studyhall-server/internal/ai"
	"github.com/studyhall/studyhall-server/internal/ai/gemini"
	"github.com/studyhall/studyhall-server/internal/ai/openai"
	"github.com/studyhall/studyhall-server/internal/config"
)

// NewCompletionProvider assembles the AI provider from config. Backends
// are added in preference order: OpenAI first, Gemini as fallback. With
// neither key present the provider is still returned and simply reports
// itself unavailable; the process must not crash over missing AI keys.
func NewCompletionProvider(cfg *config.Config, log zerolog.Logger) *ai.Provider {
	var backends []ai.Backend
	if cfg.OpenAIAPIKey != "" {
		backends = append(backends, openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel))
	}
	if cfg.GeminiAPIKey != "" {
		backends = append(backends, gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel))
	}
	if len(backends) == 0 {
		log.Warn().Msg("no AI backend configured; assistant features disabled")
	}

	timeout := time.Duration(cfg.AIRequestTimeoutSeconds) * time.Second
	return ai.NewProvider(log, timeout, backends...)
}
