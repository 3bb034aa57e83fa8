package prompt

import (
	"unicode/utf8"

	"readmellm/internal/models"
)

// TruncationMarker is inserted wherever file content was cut
const TruncationMarker = "\n[... truncated ...]\n"

// Allocate packs entry content into the budget, visiting entries in
// their stable sorted order. Each eligible entry ends up included,
// truncated (a bounded slice plus marker) or omitted; omitted entries
// keep their manifest line. The total of PackedBytes never exceeds
// budget.TotalBytes, including the case of a single file larger than
// the entire budget. Returns the packed total.
func Allocate(entries []*models.FileEntry, budget models.ContentBudget) int {
	remaining := budget.TotalBytes
	packed := 0

	for _, e := range entries {
		if !e.Eligible() {
			continue
		}

		n := len(e.Content)
		switch {
		case n <= remaining:
			e.Status = models.StatusIncluded
			e.PackedBytes = n
		case remaining > len(TruncationMarker):
			e.Content = truncate(e.Content, remaining, budget.Truncation)
			e.Status = models.StatusTruncated
			e.PackedBytes = len(e.Content)
		default:
			e.Content = ""
			e.Status = models.StatusOmitted
			e.PackedBytes = 0
		}

		remaining -= e.PackedBytes
		packed += e.PackedBytes
	}
	return packed
}

// truncate reduces content to at most max bytes including the marker,
// keeping the head, the tail, or both ends depending on policy. Cuts
// land on rune boundaries so the result stays valid UTF-8.
func truncate(content string, max int, policy models.TruncationPolicy) string {
	body := max - len(TruncationMarker)
	if body <= 0 {
		return ""
	}

	switch policy {
	case models.TruncateTail:
		return TruncationMarker + cutTail(content, body)
	case models.TruncateEdges:
		head := body / 2
		tail := body - head
		return cutHead(content, head) + TruncationMarker + cutTail(content, tail)
	default: // models.TruncateHead
		return cutHead(content, body) + TruncationMarker
	}
}

func cutHead(s string, n int) string {
	if n >= len(s) {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func cutTail(s string, n int) string {
	if n >= len(s) {
		return s
	}
	i := len(s) - n
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return s[i:]
}
