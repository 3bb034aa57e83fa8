package scan

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"readmellm/internal/models"
)

// PatternSet holds the user-supplied include and exclude globs,
// matched against slash-separated paths relative to the repository
// root. An empty include set means "include everything not excluded".
type PatternSet struct {
	include []string
	exclude []string
}

// NewPatternSet validates every glob up front so a malformed pattern
// fails the run before any traversal work.
func NewPatternSet(include, exclude []string) (*PatternSet, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(normalizePattern(p)) {
			return nil, &PatternError{Pattern: p, Err: doublestar.ErrBadPattern}
		}
	}
	return &PatternSet{include: include, exclude: exclude}, nil
}

// matchState is the input to the precedence table
type matchState struct {
	includeMatch bool
	excludeMatch bool
	hasInclude   bool
}

// policyRule is one row of the declarative precedence table
type policyRule struct {
	applies func(matchState) bool
	admit   bool
}

// precedence encodes the filtering policy explicitly: any exclude
// match wins over any include match, and a non-empty include set
// requires membership. Rows are evaluated in order, first applicable
// row decides.
var precedence = []policyRule{
	{applies: func(m matchState) bool { return m.excludeMatch }, admit: false},
	{applies: func(m matchState) bool { return m.hasInclude && !m.includeMatch }, admit: false},
	{applies: func(m matchState) bool { return true }, admit: true},
}

// Admits reports whether the relative path participates in the run
func (ps *PatternSet) Admits(relPath string) bool {
	m := matchState{
		includeMatch: matchesAny(ps.include, relPath),
		excludeMatch: matchesAny(ps.exclude, relPath),
		hasInclude:   len(ps.include) > 0,
	}
	for _, rule := range precedence {
		if rule.applies(m) {
			return rule.admit
		}
	}
	return false
}

// Filter marks entries rejected by the pattern set as
// pattern-excluded. Rejected entries stay in the list so the manifest
// records them.
func (ps *PatternSet) Filter(entries []*models.FileEntry) {
	for _, e := range entries {
		if !ps.Admits(e.Path) {
			e.Status = models.StatusExcluded
			e.Reason = models.ReasonPattern
		}
	}
}

// matchesAny tries the pattern against the path itself and against
// every ancestor directory, so a directory-level pattern excludes (or
// includes) its entire subtree.
func matchesAny(patterns []string, relPath string) bool {
	for _, p := range patterns {
		p = normalizePattern(p)
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
		for dir := parentDir(relPath); dir != ""; dir = parentDir(dir) {
			if ok, _ := doublestar.Match(p, dir); ok {
				return true
			}
		}
	}
	return false
}

func normalizePattern(p string) string {
	return strings.TrimSuffix(strings.ReplaceAll(p, "\\", "/"), "/")
}

func parentDir(relPath string) string {
	i := strings.LastIndexByte(relPath, '/')
	if i < 0 {
		return ""
	}
	return relPath[:i]
}
