package prompt

import (
	"fmt"
	"strings"

	"readmellm/internal/models"
)

// Instructions is the fixed task text sent ahead of the manifest and
// content. It never varies between runs, which keeps the assembled
// request reproducible for identical input.
const Instructions = `You are generating a README.llm file: a dense, machine-readable
summary of a source repository intended to be consumed by language
models and tooling rather than by humans.

Analyze the aggregated source code below and produce a single document
covering: the repository's purpose, its modules and their public
interfaces, the data model, notable invariants, and how the pieces fit
together. Begin each module section with a line of the form
"# === Module: <name> ===". Be factual; describe only what the code
shows. Output the document text directly, without surrounding
commentary.

A file manifest precedes the content. Files marked truncated or
omitted were cut for size; do not infer their absence is meaningful.`

// Build composes the immutable PromptRequest: instructions, a manifest
// line for every considered entry (including excluded and omitted
// ones, for transparency), then content blocks in the same stable
// order the allocator used.
func Build(repoName string, entries []*models.FileEntry) *models.PromptRequest {
	var b strings.Builder

	b.WriteString(Instructions)
	b.WriteString("\n\n---\n\n## File Manifest for ")
	b.WriteString(repoName)
	b.WriteString("\n\n")

	for _, e := range entries {
		b.WriteString(manifestLine(e))
		b.WriteByte('\n')
	}

	b.WriteString("\n---\n\n## Aggregated Source Code to Analyze\n\n")

	first := true
	for _, e := range entries {
		if e.Status != models.StatusIncluded && e.Status != models.StatusTruncated {
			continue
		}
		if !first {
			b.WriteString("\n\n")
		}
		first = false
		fmt.Fprintf(&b, "# === File: %s ===\n", e.Path)
		b.WriteString(e.Content)
	}

	return &models.PromptRequest{Text: b.String(), Entries: entries}
}

func manifestLine(e *models.FileEntry) string {
	switch e.Status {
	case models.StatusExcluded:
		return fmt.Sprintf("- %s (%d bytes): excluded (%s)", e.Path, e.Size, e.Reason)
	case models.StatusTruncated:
		return fmt.Sprintf("- %s (%d bytes): truncated to %d bytes", e.Path, e.Size, e.PackedBytes)
	case models.StatusOmitted:
		return fmt.Sprintf("- %s (%d bytes): omitted (budget exhausted)", e.Path, e.Size)
	default:
		return fmt.Sprintf("- %s (%d bytes): included", e.Path, e.Size)
	}
}
