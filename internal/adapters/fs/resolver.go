package fs

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements ports.InputResolver with gobwas/glob matching over
// slash-separated paths relative to the root.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// ResolveInputs expands patterns in order. Literals must exist; a literal
// directory expands to its files. Globs may match nothing.
func (r *Resolver) ResolveInputs(patterns []string, root string) ([]string, error) {
	seen := make(map[string]struct{})
	var result []string

	for _, pattern := range patterns {
		matches, err := r.resolve(pattern, root)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			result = append(result, m)
		}
	}

	return result, nil
}

func (r *Resolver) resolve(pattern, root string) ([]string, error) {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")

	if !IsGlob(pattern) {
		return r.resolveLiteral(pattern, root)
	}

	matcher, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}

	base := filepath.Join(root, filepath.FromSlash(StaticPrefix(pattern)))
	if _, err := os.Stat(base); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var matches []string
	for file := range r.walker.WalkFiles(base, nil) {
		rel, err := filepath.Rel(root, file)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrFailedToResolveRelativePath.Error()), "path", file)
		}
		if matcher.Match(filepath.ToSlash(rel)) {
			matches = append(matches, file)
		}
	}
	slices.Sort(matches)

	return matches, nil
}

func (r *Resolver) resolveLiteral(pattern, root string) ([]string, error) {
	abs := filepath.Join(root, filepath.FromSlash(pattern))

	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(domain.ErrInputNotFound, "path", pattern)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", abs)
	}

	if !info.IsDir() {
		return []string{abs}, nil
	}

	files := slices.Collect(r.walker.WalkFiles(abs, nil))
	slices.Sort(files)
	return files, nil
}

// Matcher reports whether a slash-separated relative path matches a pattern.
type Matcher interface {
	Match(path string) bool
}

type anyOf []glob.Glob

func (a anyOf) Match(p string) bool {
	for _, g := range a {
		if g.Match(p) {
			return true
		}
	}
	return false
}

// CompilePattern compiles a slash-separated glob. "*" stays within one path
// segment and "**" spans any number of directories, including none.
func CompilePattern(pattern string) (Matcher, error) {
	variants := globstarVariants(path.Clean(filepath.ToSlash(pattern)))

	globs := make(anyOf, 0, len(variants))
	for _, v := range variants {
		g, err := glob.Compile(v, '/')
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidPattern.Error()), "pattern", pattern)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// globstarVariants expands every "**/" segment into a variant that keeps it
// and one that drops it, so the globstar also matches zero directories.
func globstarVariants(pattern string) []string {
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		tails := globstarVariants(rest)
		out := make([]string, 0, 2*len(tails))
		for _, t := range tails {
			out = append(out, "**/"+t, t)
		}
		return out
	}

	head, tail, ok := strings.Cut(pattern, "/**/")
	if !ok {
		return []string{pattern}
	}

	tails := globstarVariants(tail)
	out := make([]string, 0, 2*len(tails))
	for _, t := range tails {
		out = append(out, head+"/**/"+t, head+"/"+t)
	}
	return out
}

// IsGlob reports whether pattern contains glob metacharacters.
func IsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// StaticPrefix returns the leading directory segments of pattern that
// contain no metacharacters. Walks start there instead of at the root.
func StaticPrefix(pattern string) string {
	segments := strings.Split(pattern, "/")
	var prefix []string
	for _, seg := range segments[:len(segments)-1] {
		if IsGlob(seg) {
			break
		}
		prefix = append(prefix, seg)
	}
	return strings.Join(prefix, "/")
}
