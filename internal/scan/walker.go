package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"readmellm/internal/models"
)

// defaultExcludedDirs are pruned unconditionally: version-control
// metadata and common dependency/build trees.
var defaultExcludedDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
	".venv":        true,
	".idea":        true,
	".vscode":      true,
}

// defaultBinaryExts are never candidates regardless of the configured
// extension set.
var defaultBinaryExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true,
	".pdf": true, ".zip": true, ".tar": true, ".gz": true, ".bz2": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true,
	".o": true, ".bin": true, ".wasm": true, ".class": true, ".jar": true,
	".woff": true, ".woff2": true, ".ttf": true, ".mp3": true, ".mp4": true,
}

// Walk enumerates candidate files under root: regular files whose
// extension is in exts (case-insensitive), outside the default
// excluded directories. It returns entries keyed by slash-separated
// relative path, deduplicated and sorted lexicographically so every
// downstream stage is reproducible.
func Walk(fsys afero.Fs, root string, exts []string) ([]*models.FileEntry, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRepoPath, root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRepoPath, root)
	}

	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = true
	}

	seen := make(map[string]bool)
	var entries []*models.FileEntry

	err = afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && defaultExcludedDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if defaultBinaryExts[ext] {
			return nil
		}
		if len(extSet) > 0 && !extSet[ext] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if seen[rel] {
			return nil
		}
		seen[rel] = true

		entries = append(entries, &models.FileEntry{
			Path: rel,
			Size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk repository: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
