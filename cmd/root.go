package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"readmellm/internal/config"
	"readmellm/internal/pipeline"
)

var (
	cfgFile         string
	includePatterns []string
	excludePatterns []string
	extensions      []string
	outputName      string
	reportJSON      bool
	reportToon      bool
)

var rootCmd = &cobra.Command{
	Use:   "readmellm [repo-path]",
	Short: "Generate a README.llm summary for a code repository",
	Long: `readmellm scans a repository, packs a size-bounded selection of its
text files into a prompt, asks a generative model for a machine-readable
summary, and writes the result as README.llm in the repository root.

Patterns are shell-style globs matched against paths relative to the
repository root; exclude patterns take precedence over include patterns.

The credential for the default gemini provider is read from the
GOOGLE_API_KEY environment variable.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runGenerate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/readmellm/config.toml)")
	rootCmd.Flags().StringSliceVar(&includePatterns, "include", []string{}, "Glob patterns to include (relative to repo root)")
	rootCmd.Flags().StringSliceVar(&excludePatterns, "exclude", []string{}, "Glob patterns to exclude (take precedence over --include)")
	rootCmd.Flags().StringSliceVar(&extensions, "ext", []string{}, "File extensions to consider (default from config)")
	rootCmd.Flags().StringVar(&outputName, "output", "", "Output filename inside the repository (default README.llm)")
	rootCmd.Flags().BoolVar(&reportJSON, "json", false, "Print the run report as JSON")
	rootCmd.Flags().BoolVar(&reportToon, "toon", false, "Print the run report in LLM-friendly toon format")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "readmellm")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	repoPath := args[0]

	if cmd.Flags().Changed("ext") {
		viper.Set("scan.extensions", extensions)
	}
	if cmd.Flags().Changed("output") {
		viper.Set("output.filename", outputName)
	}

	// The credential and all tunables are resolved here, once, before
	// any filesystem work.
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	logger := newLogger(cfg.Debug)
	defer func() { _ = logger.Sync() }()

	runner, err := pipeline.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	fmt.Printf("Scanning repository at '%s' ...\n", cfg.Display(repoPath))

	report, err := runner.Run(cmd.Context(), repoPath, includePatterns, excludePatterns)
	if err != nil {
		return err
	}

	fmt.Printf("Considered %d files: %d included, %d truncated, %d omitted, %d excluded\n",
		report.FilesWalked, report.Included, report.Truncated, report.Omitted, report.Excluded)
	if report.Usage.PromptTokens > 0 || report.Usage.OutputTokens > 0 {
		fmt.Printf("Model usage: %.1fK prompt tokens -> %.1fK output tokens\n",
			float64(report.Usage.PromptTokens)/1000, float64(report.Usage.OutputTokens)/1000)
	}
	if report.Retries > 0 {
		fmt.Printf("Transient failures retried: %d\n", report.Retries)
	}
	fmt.Printf("Wrote %s (%d bytes) in %.2f seconds\n",
		report.OutputPath, report.OutputBytes, report.DurationSecs)

	if reportJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(out))
	}
	if reportToon {
		out, err := gotoon.Encode(report)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(out)
	}

	return nil
}

func newLogger(debug bool) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{"stderr"}
	if debug {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
