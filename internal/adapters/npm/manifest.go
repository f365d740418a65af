// Package npm reads and bumps the version of package.json manifests.
package npm

import (
	"encoding/json"
	"os"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.VersionBumper = (*Bumper)(nil)

// versionField matches the first "version" member of a manifest, capturing
// the text before and after the value so the rest of the file stays intact.
var versionField = regexp.MustCompile(`("version"\s*:\s*")([^"]*)(")`)

// Bumper edits manifests in place.
type Bumper struct{}

// NewBumper creates a new Bumper.
func NewBumper() *Bumper {
	return &Bumper{}
}

type manifest struct {
	Version *string `json:"version"`
}

// ReadVersion returns the top-level version of the manifest at path.
func (b *Bumper) ReadVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	if m.Version == nil {
		return "", zerr.With(domain.ErrVersionFieldMissing, "path", path)
	}
	return *m.Version, nil
}

// BumpPatch increments the patch number and rewrites only the version value.
func (b *Bumper) BumpPatch(path string) (string, error) {
	current, err := b.ReadVersion(path)
	if err != nil {
		return "", err
	}

	v, err := semver.StrictNewVersion(current)
	if err != nil {
		return "", zerr.With(zerr.With(domain.ErrInvalidVersion, "version", current), "path", path)
	}
	next := v.IncPatch().String()

	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	loc := topLevelVersion(data)
	if loc == nil {
		return "", zerr.With(domain.ErrVersionFieldMissing, "path", path)
	}

	out := make([]byte, 0, len(data)+2)
	out = append(out, data[:loc[4]]...)
	out = append(out, next...)
	out = append(out, data[loc[5]:]...)

	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", path)
	}
	return next, nil
}

// topLevelVersion returns the submatch indexes of the "version" member at
// object depth one, skipping nested objects such as engines or dependencies.
func topLevelVersion(data []byte) []int {
	for _, loc := range versionField.FindAllSubmatchIndex(data, -1) {
		if depthAt(data, loc[0]) == 1 {
			return loc
		}
	}
	return nil
}

// depthAt counts unclosed braces and brackets before offset, ignoring string
// contents. An offset inside a string yields -1.
func depthAt(data []byte, offset int) int {
	depth := 0
	inString := false
	for i := 0; i < offset; i++ {
		c := data[i]
		switch {
		case inString && c == '\\':
			i++
		case c == '"':
			inString = !inString
		case inString:
		case c == '{' || c == '[':
			depth++
		case c == '}' || c == ']':
			depth--
		}
	}
	if inString {
		return -1
	}
	return depth
}
