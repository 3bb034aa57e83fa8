package scan

import (
	"errors"
	"testing"

	"readmellm/internal/models"
)

func TestNewPatternSetRejectsMalformedGlobs(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		wantErr bool
	}{
		{name: "empty sets", wantErr: false},
		{name: "valid globs", include: []string{"src/**", "*.go"}, exclude: []string{"**/testdata"}, wantErr: false},
		{name: "unclosed class in include", include: []string{"[abc"}, wantErr: true},
		{name: "unclosed class in exclude", exclude: []string{"src/[x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPatternSet(tt.include, tt.exclude)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				var patternErr *PatternError
				if !errors.As(err, &patternErr) {
					t.Errorf("expected *PatternError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAdmits(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		path    string
		want    bool
	}{
		{name: "empty sets admit everything", path: "src/main.go", want: true},
		{name: "include match", include: []string{"src/**"}, path: "src/main.go", want: true},
		{name: "include miss", include: []string{"src/**"}, path: "docs/readme.md", want: false},
		{name: "exclude match", exclude: []string{"**/*_test.go"}, path: "src/main_test.go", want: false},
		{name: "exclude wins over include", include: []string{"src/**"}, exclude: []string{"src/**"}, path: "src/main.go", want: false},
		{name: "exclude wins with narrower exclude", include: []string{"src/**"}, exclude: []string{"src/gen/**"}, path: "src/gen/api.go", want: false},
		{name: "directory-level exclude prunes subtree", exclude: []string{"testdata"}, path: "testdata/sub/file.go", want: false},
		{name: "directory-level exclude with trailing slash", exclude: []string{"testdata/"}, path: "testdata/file.go", want: false},
		{name: "directory-level include admits subtree", include: []string{"src"}, path: "src/deep/nested/file.go", want: true},
		{name: "top-level file not caught by dir pattern", exclude: []string{"testdata"}, path: "main.go", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, err := NewPatternSet(tt.include, tt.exclude)
			if err != nil {
				t.Fatalf("unexpected pattern error: %v", err)
			}
			if got := ps.Admits(tt.path); got != tt.want {
				t.Errorf("Admits(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestFilterMarksRejectedEntries(t *testing.T) {
	ps, err := NewPatternSet([]string{"src/**"}, []string{"src/vendor/**"})
	if err != nil {
		t.Fatalf("unexpected pattern error: %v", err)
	}

	entries := []*models.FileEntry{
		{Path: "src/a.go"},
		{Path: "src/vendor/dep.go"},
		{Path: "docs/guide.md"},
	}
	ps.Filter(entries)

	if entries[0].Status == models.StatusExcluded {
		t.Errorf("src/a.go should not be excluded")
	}
	for _, e := range entries[1:] {
		if e.Status != models.StatusExcluded || e.Reason != models.ReasonPattern {
			t.Errorf("%s: got status=%q reason=%q, want pattern-excluded", e.Path, e.Status, e.Reason)
		}
	}
}
