package domain

import "path"

// FileSet is an ordered list of path patterns relative to the project root.
// Order is significant: concatenation output follows it byte for byte.
type FileSet []string

// Strings returns the patterns as a plain slice.
func (fs FileSet) Strings() []string {
	return append([]string(nil), fs...)
}

// SrcFiles returns the source set: polyfills, then the concatenation order under the source directory.
func (l Layout) SrcFiles() FileSet {
	set := make(FileSet, 0, len(l.Polyfills)+len(l.ConcatOrder))
	set = append(set, l.Polyfills...)
	for _, f := range l.ConcatOrder {
		set = append(set, path.Join(l.SrcDir, f))
	}
	return set
}

// TestFiles returns the test set: compiled sources in concatenation order followed by the spec pattern.
// Polyfills are prepended only when regenerator is set.
func (l Layout) TestFiles(regenerator bool) FileSet {
	set := make(FileSet, 0, len(l.Polyfills)+len(l.ConcatOrder)+1)
	if regenerator {
		set = append(set, l.Polyfills...)
	}
	for _, f := range l.ConcatOrder {
		set = append(set, path.Join(l.BuildDir, f))
	}
	return append(set, path.Join(l.BuildDir, l.SpecPattern))
}

// BundlePath returns the path of the minified release bundle.
func (l Layout) BundlePath(name string) string {
	return path.Join(l.DistDir, name)
}

// BundleMapPath returns the path of the release bundle's source map.
func (l Layout) BundleMapPath(name string) string {
	return path.Join(l.DistDir, name+".map")
}
