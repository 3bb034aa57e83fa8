package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempRepo is a throwaway repository tree for tests
type TempRepo struct {
	Path string
	T    *testing.T
}

// NewTempRepo creates an empty temporary repository root, removed
// automatically when the test finishes.
func NewTempRepo(t *testing.T) *TempRepo {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "readmellm-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Errorf("failed to cleanup temp repo: %v", err)
		}
	})

	return &TempRepo{Path: tmpDir, T: t}
}

// CreateFile creates a file (and any parent directories) in the repo
func (r *TempRepo) CreateFile(name, content string) {
	r.T.Helper()
	path := filepath.Join(r.Path, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.T.Fatalf("failed to create file: %v", err)
	}
}

// CreateBinaryFile creates a file with raw bytes
func (r *TempRepo) CreateBinaryFile(name string, content []byte) {
	r.T.Helper()
	path := filepath.Join(r.Path, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		r.T.Fatalf("failed to create file: %v", err)
	}
}

// ReadFile reads a file from the repo, failing the test on error
func (r *TempRepo) ReadFile(name string) string {
	r.T.Helper()
	data, err := os.ReadFile(filepath.Join(r.Path, filepath.FromSlash(name)))
	if err != nil {
		r.T.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

// FileExists checks whether a file exists in the repo
func (r *TempRepo) FileExists(name string) bool {
	r.T.Helper()
	_, err := os.Stat(filepath.Join(r.Path, filepath.FromSlash(name)))
	return err == nil
}
