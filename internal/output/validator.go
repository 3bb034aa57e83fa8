package output

import (
	"fmt"
	"strings"
	"time"

	"readmellm/internal/llm"
	"readmellm/internal/models"
)

// Validate checks the model response is usable and promotes it into
// the GeneratedDocument. Empty text or an incomplete finish state maps
// to the content-failure class: retrying would not help either.
func Validate(repo string, resp *models.ModelResponse, now time.Time) (*models.GeneratedDocument, error) {
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response text", llm.ErrContent)
	}
	if resp.Finish != models.FinishComplete {
		return nil, fmt.Errorf("%w: completion finished as %q", llm.ErrContent, resp.Finish)
	}

	return &models.GeneratedDocument{
		Text:        StripCodeFence(resp.Text),
		Repository:  repo,
		GeneratedAt: now,
		Provider:    resp.Provider,
		Model:       resp.Model,
		Usage:       resp.Usage,
	}, nil
}

// StripCodeFence removes a markdown code fence when it surrounds the
// whole document. Models habitually wrap generated files this way.
func StripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") {
		return text
	}
	first := strings.IndexByte(trimmed, '\n')
	last := strings.LastIndexByte(trimmed, '\n')
	if first < 0 || last <= first {
		return text
	}
	return strings.TrimSpace(trimmed[first+1 : last])
}
