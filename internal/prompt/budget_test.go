package prompt

import (
	"strings"
	"testing"

	"readmellm/internal/models"
)

func entry(path string, size int) *models.FileEntry {
	content := strings.Repeat("a", size)
	return &models.FileEntry{Path: path, Size: int64(size), Content: content}
}

func budget(total, perFile int, policy models.TruncationPolicy) models.ContentBudget {
	return models.ContentBudget{TotalBytes: total, MaxFileBytes: perFile, Truncation: policy}
}

func TestAllocateNeverExceedsBudget(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		total int
	}{
		{name: "everything fits", sizes: []int{10, 20, 30}, total: 100},
		{name: "last file truncated", sizes: []int{40, 40, 40}, total: 100},
		{name: "single file larger than whole budget", sizes: []int{5000}, total: 100},
		{name: "tiny budget", sizes: []int{100, 100}, total: 10},
		{name: "mixed sizes 10/50/5000 at 100", sizes: []int{10, 50, 5000}, total: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []*models.FileEntry
			for i, size := range tt.sizes {
				entries = append(entries, entry(string(rune('a'+i))+".go", size))
			}

			packed := Allocate(entries, budget(tt.total, 1<<20, models.TruncateHead))

			if packed > tt.total {
				t.Errorf("packed %d bytes, budget is %d", packed, tt.total)
			}
			sum := 0
			for _, e := range entries {
				if len(e.Content) != e.PackedBytes {
					t.Errorf("%s: content length %d != packed %d", e.Path, len(e.Content), e.PackedBytes)
				}
				sum += e.PackedBytes
				if e.Status == "" {
					t.Errorf("%s: allocator left entry without a status", e.Path)
				}
			}
			if sum != packed {
				t.Errorf("per-entry sum %d != reported total %d", sum, packed)
			}
		})
	}
}

func TestAllocateSpecScenario(t *testing.T) {
	entries := []*models.FileEntry{
		entry("a.go", 10),
		entry("b.go", 50),
		entry("c.go", 5000),
	}

	packed := Allocate(entries, budget(100, 1<<20, models.TruncateHead))

	if packed > 100 {
		t.Fatalf("packed %d bytes, budget is 100", packed)
	}
	if entries[0].Status != models.StatusIncluded || entries[1].Status != models.StatusIncluded {
		t.Errorf("small files should be fully included, got %q and %q",
			entries[0].Status, entries[1].Status)
	}
	if entries[2].Status != models.StatusTruncated && entries[2].Status != models.StatusOmitted {
		t.Errorf("5000-byte file should be truncated or omitted, got %q", entries[2].Status)
	}
}

func TestAllocateSingleOversizeFileIsTruncatedNotDropped(t *testing.T) {
	e := entry("huge.go", 5000)
	packed := Allocate([]*models.FileEntry{e}, budget(100, 1<<20, models.TruncateHead))

	if e.Status != models.StatusTruncated {
		t.Fatalf("expected truncation, got %q", e.Status)
	}
	if packed == 0 || packed > 100 {
		t.Errorf("packed = %d, want within (0, 100]", packed)
	}
	if !strings.Contains(e.Content, TruncationMarker) {
		t.Error("truncated content is missing the marker")
	}
}

func TestAllocateOmitsWhenBudgetExhausted(t *testing.T) {
	entries := []*models.FileEntry{
		entry("a.go", 100),
		entry("b.go", 100),
	}
	Allocate(entries, budget(100, 1<<20, models.TruncateHead))

	if entries[0].Status != models.StatusIncluded {
		t.Errorf("first entry should be included, got %q", entries[0].Status)
	}
	if entries[1].Status != models.StatusOmitted {
		t.Errorf("second entry should be omitted, got %q", entries[1].Status)
	}
	if entries[1].Content != "" || entries[1].PackedBytes != 0 {
		t.Error("omitted entry should carry no content")
	}
}

func TestAllocateSkipsExcludedEntries(t *testing.T) {
	excluded := entry("bin.go", 50)
	excluded.Status = models.StatusExcluded
	excluded.Reason = models.ReasonBinary
	ok := entry("ok.go", 50)

	packed := Allocate([]*models.FileEntry{excluded, ok}, budget(100, 1<<20, models.TruncateHead))

	if excluded.PackedBytes != 0 || excluded.Status != models.StatusExcluded {
		t.Error("excluded entry must not receive budget")
	}
	if ok.Status != models.StatusIncluded || packed != 50 {
		t.Errorf("eligible entry should take its full size, packed=%d", packed)
	}
}

func TestTruncationPolicies(t *testing.T) {
	content := strings.Repeat("H", 50) + strings.Repeat("T", 50)

	tests := []struct {
		name   string
		policy models.TruncationPolicy
		check  func(t *testing.T, got string)
	}{
		{
			name:   "head keeps the beginning",
			policy: models.TruncateHead,
			check: func(t *testing.T, got string) {
				if !strings.HasPrefix(got, "H") || !strings.HasSuffix(got, TruncationMarker) {
					t.Errorf("head policy output malformed: %q", got)
				}
			},
		},
		{
			name:   "tail keeps the end",
			policy: models.TruncateTail,
			check: func(t *testing.T, got string) {
				if !strings.HasPrefix(got, TruncationMarker) || !strings.HasSuffix(got, "T") {
					t.Errorf("tail policy output malformed: %q", got)
				}
			},
		},
		{
			name:   "edges keeps both ends",
			policy: models.TruncateEdges,
			check: func(t *testing.T, got string) {
				if !strings.HasPrefix(got, "H") || !strings.HasSuffix(got, "T") ||
					!strings.Contains(got, TruncationMarker) {
					t.Errorf("edges policy output malformed: %q", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &models.FileEntry{Path: "f.go", Size: 100, Content: content}
			Allocate([]*models.FileEntry{e}, budget(60, 1<<20, tt.policy))
			if e.Status != models.StatusTruncated {
				t.Fatalf("expected truncation, got %q", e.Status)
			}
			if len(e.Content) > 60 {
				t.Errorf("truncated content is %d bytes, budget is 60", len(e.Content))
			}
			tt.check(t, e.Content)
		})
	}
}

func TestTruncateCutsOnRuneBoundary(t *testing.T) {
	e := &models.FileEntry{Path: "u.go", Size: 400, Content: strings.Repeat("héllo wörld ", 30)}
	Allocate([]*models.FileEntry{e}, budget(101, 1<<20, models.TruncateHead))

	for _, r := range e.Content {
		if r == '�' {
			t.Fatal("truncation produced invalid UTF-8")
		}
	}
}
