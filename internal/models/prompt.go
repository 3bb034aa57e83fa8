package models

// PromptRequest is the fully assembled model request. It is immutable
// once built: Text already contains the instruction block, the manifest
// of every considered entry and the packed content blocks in stable
// (lexicographic) path order.
type PromptRequest struct {
	Text    string
	Entries []*FileEntry
}

// Size returns the request body size in bytes
func (p *PromptRequest) Size() int {
	return len(p.Text)
}

// FinishState classifies how the model ended its answer
type FinishState string

const (
	// FinishComplete means the model stopped normally
	FinishComplete FinishState = "complete"
	// FinishTruncated means the answer was cut off by a length limit
	FinishTruncated FinishState = "truncated"
	// FinishBlocked means a safety or policy filter intervened
	FinishBlocked FinishState = "blocked"
)

// TokenUsage carries the provider-reported token accounting, when the
// provider reports one at all.
type TokenUsage struct {
	PromptTokens int `json:"prompt_tokens,omitempty"`
	OutputTokens int `json:"output_tokens,omitempty"`
}

// ModelResponse is the raw outcome of one successful model invocation
type ModelResponse struct {
	Text     string      `json:"-"`
	Finish   FinishState `json:"finish"`
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Usage    TokenUsage  `json:"usage"`

	// Retries is how many transient failures preceded this response
	Retries int `json:"retries"`
}
