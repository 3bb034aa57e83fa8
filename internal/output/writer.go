package output

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"readmellm/internal/models"
)

// ErrWrite marks a failure to persist the generated document. The
// write discipline below guarantees the previous output (or nothing)
// is still in place when this is returned.
var ErrWrite = errors.New("failed to write output")

// Write persists the document under dir/filename by writing a
// temporary file in the same directory and renaming it into place, so
// a crash between write and rename never leaves a partial file under
// the final name. Returns the final path and size.
func Write(fsys afero.Fs, dir, filename string, doc *models.GeneratedDocument) (string, int64, error) {
	data := []byte(doc.Text)
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", filename, time.Now().UnixNano()))
	if err := afero.WriteFile(fsys, tmp, data, 0644); err != nil {
		_ = fsys.Remove(tmp)
		return "", 0, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	final := filepath.Join(dir, filename)
	if err := fsys.Rename(tmp, final); err != nil {
		_ = fsys.Remove(tmp)
		return "", 0, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	return final, int64(len(data)), nil
}
