package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"readmellm/internal/models"
)

// Provider names accepted for llm.provider
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config is the full run configuration, read once at startup. The API
// credential lives here as an explicit value so nothing downstream
// touches process environment state mid-pipeline.
type Config struct {
	Provider   string
	Model      string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int

	Budget models.ContentBudget

	Extensions     []string
	OutputFilename string

	Debug       bool
	DisplayPath string
}

// SetDefaults registers every config default on the given viper
// instance. Called from cmd.initConfig before the config file is read.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout_seconds", 120)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("budget.total_bytes", 512000)
	v.SetDefault("budget.max_file_bytes", 262144)
	v.SetDefault("budget.truncation", string(models.TruncateHead))
	v.SetDefault("output.filename", "README.llm")
	v.SetDefault("scan.extensions", []string{
		".py", ".ts", ".js", ".java", ".hpp", ".h", ".go",
		".rs", ".rb", ".c", ".cpp", ".md",
	})
}

// Load materializes the Config from viper and validates it eagerly,
// before any filesystem or network work happens.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Provider:   strings.ToLower(v.GetString("llm.provider")),
		Model:      v.GetString("llm.model"),
		APIKey:     v.GetString("GOOGLE_API_KEY"),
		Timeout:    time.Duration(v.GetInt("llm.timeout_seconds")) * time.Second,
		MaxRetries: v.GetInt("llm.max_retries"),
		Budget: models.ContentBudget{
			TotalBytes:   v.GetInt("budget.total_bytes"),
			MaxFileBytes: v.GetInt("budget.max_file_bytes"),
			Truncation:   models.TruncationPolicy(v.GetString("budget.truncation")),
		},
		Extensions:     v.GetStringSlice("scan.extensions"),
		OutputFilename: v.GetString("output.filename"),
		Debug:          strings.EqualFold(v.GetString("DEBUG_MODE"), "true"),
		DisplayPath:    v.GetString("HOST_REPO_PATH"),
	}

	if v.IsSet("MAX_PROMPT_SIZE") {
		cfg.Budget.TotalBytes = v.GetInt("MAX_PROMPT_SIZE")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel(cfg.Provider, v)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultModel(provider string, v *viper.Viper) string {
	switch provider {
	case ProviderOllama:
		return "llama3.2"
	default:
		if m := v.GetString("GEMINI_MODEL"); m != "" {
			return m
		}
		return "gemini-1.5-flash-latest"
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY environment variable not set")
		}
	case ProviderOllama:
		// No credential; the daemon address comes from OLLAMA_HOST.
	default:
		return fmt.Errorf("unknown llm provider: %q", c.Provider)
	}

	if c.Budget.TotalBytes <= 0 {
		return fmt.Errorf("budget.total_bytes must be positive, got %d", c.Budget.TotalBytes)
	}
	if c.Budget.MaxFileBytes <= 0 {
		return fmt.Errorf("budget.max_file_bytes must be positive, got %d", c.Budget.MaxFileBytes)
	}
	switch c.Budget.Truncation {
	case models.TruncateHead, models.TruncateTail, models.TruncateEdges:
	default:
		return fmt.Errorf("budget.truncation must be head, tail or edges, got %q", c.Budget.Truncation)
	}
	if c.OutputFilename == "" || strings.ContainsAny(c.OutputFilename, "/\\") {
		return fmt.Errorf("output.filename must be a bare filename, got %q", c.OutputFilename)
	}
	return nil
}

// Display returns the path to show in user-facing messages: the host
// path when the caller mounted the repository into a different location
// than the one the user typed, the real path otherwise.
func (c *Config) Display(repoPath string) string {
	if c.DisplayPath != "" {
		return c.DisplayPath
	}
	return repoPath
}
