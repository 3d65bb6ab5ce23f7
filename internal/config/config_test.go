package config

import (
	"os"
	"testing"
)

func TestConfigLoad_Defaults(t *testing.T) {
	_ = os.Unsetenv("STUDYHALL_HTTP_PORT")
	_ = os.Unsetenv("STUDYHALL_OPENAI_MODEL")
	_ = os.Unsetenv("STUDYHALL_AI_REQUEST_TIMEOUT_SECONDS")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 8080 || cfg.OpenAIModel != "gpt-4o" || cfg.GeminiModel != "gemini-1.5-pro" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.AIRequestTimeoutSeconds != 60 {
		t.Fatalf("unexpected default ai timeout: %d", cfg.AIRequestTimeoutSeconds)
	}
	if !cfg.SeedDemoData {
		t.Fatalf("expected demo data seeding on by default")
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	_ = os.Setenv("STUDYHALL_OPENAI_MODEL", "test-model")
	defer func() { _ = os.Unsetenv("STUDYHALL_OPENAI_MODEL") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.OpenAIModel != "test-model" {
		t.Fatalf("openai model env override failed, got %s", cfg.OpenAIModel)
	}
}

func TestConfigLoad_InvalidPort(t *testing.T) {
	_ = os.Setenv("STUDYHALL_HTTP_PORT", "-1")
	defer func() { _ = os.Unsetenv("STUDYHALL_HTTP_PORT") }()

	if _, err := New(); err == nil {
		t.Fatalf("expected error for negative port")
	}
}
