package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"readmellm/internal/config"
	"readmellm/internal/llm"
	"readmellm/internal/models"
	"readmellm/internal/output"
	"readmellm/internal/prompt"
	"readmellm/internal/scan"
)

// Stage names the pipeline phase a failure came from
type Stage string

const (
	StageScan     Stage = "scanning"
	StageRequest  Stage = "requesting"
	StageValidate Stage = "validating"
	StageWrite    Stage = "writing"
)

// StageError is the single failure surface of a run: which stage
// failed and why, rendered as one human-readable line.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Runner executes the selection -> assembly -> model -> persistence
// pipeline. Every run owns its entry list and prompt, so concurrent
// runs over different repositories share no mutable state.
type Runner struct {
	FS     afero.Fs
	Config *config.Config
	Client llm.Client
	Logger *zap.Logger
	Now    func() time.Time
}

// New wires a Runner against the real filesystem and the configured
// model provider, wrapped with the transient-retry policy.
func New(cfg *config.Config, logger *zap.Logger) (*Runner, error) {
	client, err := llm.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Runner{
		FS:     afero.NewOsFs(),
		Config: cfg,
		Client: llm.NewRetrier(client, cfg.MaxRetries, logger),
		Logger: logger,
		Now:    time.Now,
	}, nil
}

// Run processes one repository. Local errors (path, patterns, empty
// selection) abort before any network call is attempted.
func (r *Runner) Run(ctx context.Context, repoPath string, include, exclude []string) (*models.RunReport, error) {
	start := r.Now()
	display := r.Config.Display(repoPath)

	patterns, err := scan.NewPatternSet(include, exclude)
	if err != nil {
		return nil, &StageError{Stage: StageScan, Err: err}
	}

	entries, err := scan.Walk(r.FS, repoPath, r.Config.Extensions)
	if err != nil {
		return nil, &StageError{Stage: StageScan, Err: err}
	}
	r.Logger.Debug("walked repository",
		zap.String("root", display), zap.Int("files", len(entries)))

	patterns.Filter(entries)
	scan.Load(r.FS, repoPath, entries, r.Config.Budget.MaxFileBytes, r.Logger)

	eligible := 0
	for _, e := range entries {
		if e.Eligible() {
			eligible++
		}
	}
	if eligible == 0 {
		return nil, &StageError{Stage: StageScan, Err: scan.ErrNoEligibleFiles}
	}

	packed := prompt.Allocate(entries, r.Config.Budget)
	req := prompt.Build(filepath.Base(display), entries)
	r.Logger.Debug("assembled prompt",
		zap.Int("eligible_files", eligible),
		zap.Int("packed_bytes", packed),
		zap.Int("prompt_bytes", req.Size()))
	if r.Config.Debug {
		r.Logger.Debug("prompt prefix", zap.String("prompt", head(req.Text, 1000)))
	}

	resp, err := r.Client.Generate(ctx, req)
	if err != nil {
		return nil, &StageError{Stage: StageRequest, Err: err}
	}

	doc, err := output.Validate(display, resp, r.Now())
	if err != nil {
		return nil, &StageError{Stage: StageValidate, Err: err}
	}

	outPath, outSize, err := output.Write(r.FS, repoPath, r.Config.OutputFilename, doc)
	if err != nil {
		return nil, &StageError{Stage: StageWrite, Err: err}
	}

	report := &models.RunReport{
		Repository:  display,
		PromptBytes: req.Size(),
		Provider:    resp.Provider,
		Model:       resp.Model,
		Retries:     resp.Retries,
		Usage:       resp.Usage,
		OutputPath:  outPath,
		OutputBytes: outSize,
		Duration:    r.Now().Sub(start),
	}
	report.DurationSecs = report.Duration.Seconds()
	report.Tally(entries)
	return report, nil
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
