package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"readmellm/internal/models"
)

func newViper(t *testing.T, values map[string]any) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestLoadDefaults(t *testing.T) {
	v := newViper(t, map[string]any{"GOOGLE_API_KEY": "test-key"})

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != ProviderGemini {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.Model != "gemini-1.5-flash-latest" {
		t.Errorf("model = %q", cfg.Model)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("api key = %q", cfg.APIKey)
	}
	if cfg.Budget.TotalBytes != 512000 || cfg.Budget.MaxFileBytes != 262144 {
		t.Errorf("budget = %+v", cfg.Budget)
	}
	if cfg.Budget.Truncation != models.TruncateHead {
		t.Errorf("truncation = %q", cfg.Budget.Truncation)
	}
	if cfg.OutputFilename != "README.llm" {
		t.Errorf("output filename = %q", cfg.OutputFilename)
	}
	if cfg.Timeout != 120*time.Second || cfg.MaxRetries != 3 {
		t.Errorf("timeout/retries = %v/%d", cfg.Timeout, cfg.MaxRetries)
	}
}

func TestLoadCredentialRequiredEagerly(t *testing.T) {
	v := newViper(t, nil)

	_, err := Load(v)
	if err == nil {
		t.Fatal("expected error when GOOGLE_API_KEY is unset")
	}
	if !strings.Contains(err.Error(), "GOOGLE_API_KEY") {
		t.Errorf("error should name the missing variable: %v", err)
	}
}

func TestLoadOllamaNeedsNoCredential(t *testing.T) {
	v := newViper(t, map[string]any{"llm.provider": "ollama"})

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model != "llama3.2" {
		t.Errorf("default ollama model = %q", cfg.Model)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	v := newViper(t, map[string]any{
		"GOOGLE_API_KEY":  "k",
		"GEMINI_MODEL":    "gemini-2.0-pro",
		"MAX_PROMPT_SIZE": 1024,
		"DEBUG_MODE":      "true",
		"HOST_REPO_PATH":  "/host/project",
	})

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model != "gemini-2.0-pro" {
		t.Errorf("model = %q", cfg.Model)
	}
	if cfg.Budget.TotalBytes != 1024 {
		t.Errorf("budget total = %d", cfg.Budget.TotalBytes)
	}
	if !cfg.Debug {
		t.Error("debug mode should be enabled")
	}
	if cfg.Display("/app/repo") != "/host/project" {
		t.Errorf("display path = %q", cfg.Display("/app/repo"))
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{name: "unknown provider", values: map[string]any{"llm.provider": "frontier9000"}},
		{name: "zero budget", values: map[string]any{"GOOGLE_API_KEY": "k", "budget.total_bytes": 0}},
		{name: "zero per-file cap", values: map[string]any{"GOOGLE_API_KEY": "k", "budget.max_file_bytes": 0}},
		{name: "bad truncation policy", values: map[string]any{"GOOGLE_API_KEY": "k", "budget.truncation": "middle"}},
		{name: "output filename with path", values: map[string]any{"GOOGLE_API_KEY": "k", "output.filename": "sub/out.llm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(newViper(t, tt.values)); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestDisplayFallsBackToRealPath(t *testing.T) {
	v := newViper(t, map[string]any{"GOOGLE_API_KEY": "k"})
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Display("/app/repo") != "/app/repo" {
		t.Errorf("display = %q", cfg.Display("/app/repo"))
	}
}
