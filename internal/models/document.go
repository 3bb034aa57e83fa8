package models

import "time"

// GeneratedDocument is the sole persisted artifact of a run. It exists
// only after the model response passed validation.
type GeneratedDocument struct {
	Text        string     `json:"-"`
	Repository  string     `json:"repository"`
	GeneratedAt time.Time  `json:"generated_at"`
	Provider    string     `json:"provider"`
	Model       string     `json:"model"`
	Usage       TokenUsage `json:"usage"`
}
