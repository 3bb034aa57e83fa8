package models

// Status describes how a file entry ended up in the assembled prompt
type Status string

const (
	// StatusIncluded means the full file content is in the prompt
	StatusIncluded Status = "included"
	// StatusTruncated means a bounded prefix/suffix is in the prompt
	StatusTruncated Status = "truncated"
	// StatusOmitted means the budget ran out before this entry
	StatusOmitted Status = "omitted"
	// StatusExcluded means the entry never reached the allocator
	StatusExcluded Status = "excluded"
)

// ExcludeReason explains why an entry was excluded before allocation
type ExcludeReason string

const (
	ReasonNone      ExcludeReason = ""
	ReasonPattern   ExcludeReason = "pattern"
	ReasonExtension ExcludeReason = "extension"
	ReasonBinary    ExcludeReason = "binary"
	ReasonOversized ExcludeReason = "oversized"
)

// FileEntry is one considered file, keyed by its slash-separated path
// relative to the repository root. Entries are created in a single
// walk+filter+load pass and only the allocator mutates them afterwards
// (to mark truncation or omission).
type FileEntry struct {
	Path    string        `json:"path"`
	Size    int64         `json:"size"`
	Content string        `json:"-"`
	Status  Status        `json:"status"`
	Reason  ExcludeReason `json:"reason,omitempty"`

	// PackedBytes is how many content bytes the allocator admitted
	PackedBytes int `json:"packed_bytes,omitempty"`
}

// Eligible reports whether the entry survived filtering and loading
// and may therefore receive prompt budget.
func (e *FileEntry) Eligible() bool {
	return e.Status != StatusExcluded
}

// TruncationPolicy selects which part of an over-budget file survives
type TruncationPolicy string

const (
	// TruncateHead keeps the beginning of the file
	TruncateHead TruncationPolicy = "head"
	// TruncateTail keeps the end of the file
	TruncateTail TruncationPolicy = "tail"
	// TruncateEdges keeps both ends around a marker
	TruncateEdges TruncationPolicy = "edges"
)

// ContentBudget bounds how much file content is packed into one prompt
type ContentBudget struct {
	TotalBytes   int              `json:"total_bytes"`
	MaxFileBytes int              `json:"max_file_bytes"`
	Truncation   TruncationPolicy `json:"truncation"`
}
