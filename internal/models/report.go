package models

import "time"

// RunReport summarizes one pipeline run for the --json/--toon output
type RunReport struct {
	Repository   string        `json:"repository"`
	FilesWalked  int           `json:"files_walked"`
	Included     int           `json:"included"`
	Truncated    int           `json:"truncated"`
	Omitted      int           `json:"omitted"`
	Excluded     int           `json:"excluded"`
	PackedBytes  int           `json:"packed_bytes"`
	PromptBytes  int           `json:"prompt_bytes"`
	Provider     string        `json:"provider"`
	Model        string        `json:"model"`
	Retries      int           `json:"retries"`
	Usage        TokenUsage    `json:"usage"`
	OutputPath   string        `json:"output_path"`
	OutputBytes  int64         `json:"output_bytes"`
	Duration     time.Duration `json:"-"`
	DurationSecs float64       `json:"duration_seconds"`
	Entries      []*FileEntry  `json:"entries"`
}

// Tally fills the per-status counters from the entry list
func (r *RunReport) Tally(entries []*FileEntry) {
	r.FilesWalked = len(entries)
	r.Entries = entries
	for _, e := range entries {
		switch e.Status {
		case StatusIncluded:
			r.Included++
		case StatusTruncated:
			r.Truncated++
		case StatusOmitted:
			r.Omitted++
		case StatusExcluded:
			r.Excluded++
		}
		r.PackedBytes += e.PackedBytes
	}
}
