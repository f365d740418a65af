// Package esbuild implements ports.Transpiler with the esbuild transform API.
package esbuild

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Transpiler = (*Transpiler)(nil)

var targets = map[string]api.Target{
	"es5":    api.ES5,
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

// Transpiler runs concatenated sources through esbuild.
type Transpiler struct{}

// NewTranspiler creates a new Transpiler.
func NewTranspiler() *Transpiler {
	return &Transpiler{}
}

// Transform concatenates req.Sources in order and transforms the result.
func (t *Transpiler) Transform(ctx context.Context, req *domain.TransformRequest) (*domain.TransformResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, ok := targets[strings.ToLower(req.Target)]
	if !ok {
		return nil, zerr.With(domain.ErrTransformFailed, "target", req.Target)
	}

	opts := api.TransformOptions{
		Loader:     api.LoaderJS,
		Target:     target,
		Sourcefile: sourceFile(req),
		Charset:    api.CharsetUTF8,
	}

	if req.Minify {
		opts.MinifyWhitespace = true
		opts.MinifyIdentifiers = true
		opts.MinifySyntax = true
	}

	switch req.SourceMap {
	case domain.SourceMapInline:
		opts.Sourcemap = api.SourceMapInline
	case domain.SourceMapExternal:
		opts.Sourcemap = api.SourceMapExternal
	}
	if req.SourceMap != domain.SourceMapNone {
		opts.SourcesContent = api.SourcesContentInclude
	}

	if req.LowerGenerators {
		opts.Supported = map[string]bool{
			"async-await":     false,
			"async-generator": false,
			"for-await":       false,
		}
	}

	if req.Module != "" && req.Module != domain.ModuleIgnore {
		opts.Format = api.FormatCommonJS
		opts.Banner, opts.Footer = moduleWrapper(req.Module, req.OutputName)
	}

	result := api.Transform(string(concat(req.Sources)), opts)
	if len(result.Errors) > 0 {
		return nil, transformError(result.Errors)
	}

	code := result.Code
	if req.SourceMap == domain.SourceMapExternal {
		code = append(code, fmt.Sprintf("//# sourceMappingURL=%s.map\n", path.Base(req.OutputName))...)
	}

	return &domain.TransformResult{Code: code, Map: result.Map}, nil
}

// sourceFile names the input in diagnostics and maps. Concatenated input is
// named after the output.
func sourceFile(req *domain.TransformRequest) string {
	if len(req.Sources) == 1 {
		return req.Sources[0].Path
	}
	return path.Base(req.OutputName)
}

func concat(sources []domain.Source) []byte {
	var buf bytes.Buffer
	for _, src := range sources {
		buf.Write(src.Content)
		if len(src.Content) > 0 && src.Content[len(src.Content)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

func transformError(msgs []api.Message) error {
	msg := msgs[0]
	err := zerr.With(domain.ErrTransformFailed, "reason", msg.Text)
	if msg.Location != nil {
		err = zerr.With(err, "file", msg.Location.File)
		err = zerr.With(err, "line", msg.Location.Line)
		err = zerr.With(err, "column", msg.Location.Column)
	}
	if len(msgs) > 1 {
		err = zerr.With(err, "errors", len(msgs))
	}
	return err
}
