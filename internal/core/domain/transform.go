package domain

// SourceMapMode selects how a source map is attached to transformed code.
type SourceMapMode int

const (
	// SourceMapNone emits no map.
	SourceMapNone SourceMapMode = iota
	// SourceMapInline embeds the map as a data URL comment.
	SourceMapInline
	// SourceMapExternal returns the map separately and links it with a sourceMappingURL comment.
	SourceMapExternal
)

// Source is one input file of a transform.
type Source struct {
	Path    string
	Content []byte
}

// TransformRequest describes one transform: concatenate, transpile, optionally minify, map.
type TransformRequest struct {
	Sources []Source
	// OutputName is the file name the code is written under. Maps reference it.
	OutputName      string
	Module          ModuleType
	Target          string
	Minify          bool
	SourceMap       SourceMapMode
	LowerGenerators bool
}

// TransformResult is the code and, for external maps, the map.
type TransformResult struct {
	Code []byte
	Map  []byte
}
