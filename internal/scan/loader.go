package scan

import (
	"bytes"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"readmellm/internal/models"
)

// Load reads content for every entry that survived filtering. A file
// that fails text decoding is marked binary-excluded and one larger
// than the per-file cap is marked oversized-excluded; neither aborts
// the run. Truncation of files that fit the per-file cap is the
// allocator's job.
func Load(fsys afero.Fs, root string, entries []*models.FileEntry, maxFileBytes int, logger *zap.Logger) {
	for _, e := range entries {
		if !e.Eligible() {
			continue
		}

		if e.Size > int64(maxFileBytes) {
			e.Status = models.StatusExcluded
			e.Reason = models.ReasonOversized
			logger.Debug("skipping oversized file",
				zap.String("path", e.Path), zap.Int64("size", e.Size))
			continue
		}

		data, err := afero.ReadFile(fsys, filepath.Join(root, filepath.FromSlash(e.Path)))
		if err != nil {
			// Unreadable files are treated like undecodable ones:
			// recorded in the manifest, never fatal.
			e.Status = models.StatusExcluded
			e.Reason = models.ReasonBinary
			logger.Warn("could not read file", zap.String("path", e.Path), zap.Error(err))
			continue
		}

		if !isText(data) {
			e.Status = models.StatusExcluded
			e.Reason = models.ReasonBinary
			logger.Debug("skipping binary file", zap.String("path", e.Path))
			continue
		}

		e.Size = int64(len(data))
		e.Content = string(data)
	}
}

// isText rejects NUL-bearing or invalid-UTF-8 content
func isText(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	return utf8.Valid(data)
}
