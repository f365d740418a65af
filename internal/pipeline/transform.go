package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"go.trai.ch/ybuild/internal/adapters/fs" //nolint:depguard // glob base shared with input resolution
	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// deployBuild writes the minified bundle and its external map into the dist directory.
func (p *Pipeline) deployBuild(ctx context.Context, out io.Writer) error {
	sources, err := p.readSources(p.project.Layout.SrcFiles().Strings())
	if err != nil {
		return err
	}

	res, err := p.Transpiler.Transform(ctx, &domain.TransformRequest{
		Sources:         sources,
		OutputName:      p.opts.Name,
		Module:          p.opts.Export,
		Target:          p.project.Transpile.Target,
		Minify:          true,
		SourceMap:       domain.SourceMapExternal,
		LowerGenerators: true,
	})
	if err != nil {
		return err
	}

	layout := p.project.Layout
	if err := p.writeFile(out, layout.BundlePath(p.opts.Name), res.Code); err != nil {
		return err
	}
	return p.writeFile(out, layout.BundleMapPath(p.opts.Name), res.Map)
}

// buildTest writes the unminified bundle to the project root, then transpiles
// every file of the test glob into the build directory.
func (p *Pipeline) buildTest(ctx context.Context, out io.Writer) error {
	sources, err := p.readSources(p.project.Layout.SrcFiles().Strings())
	if err != nil {
		return err
	}

	res, err := p.Transpiler.Transform(ctx, &domain.TransformRequest{
		Sources:         sources,
		OutputName:      p.opts.Name,
		Module:          p.opts.Export,
		Target:          p.project.Transpile.Target,
		SourceMap:       domain.SourceMapInline,
		LowerGenerators: p.opts.Regenerator,
	})
	if err != nil {
		return err
	}
	if err := p.writeFile(out, p.opts.Name, res.Code); err != nil {
		return err
	}

	files, err := p.readSources([]string{p.opts.TestFiles})
	if err != nil {
		return err
	}

	base := fs.StaticPrefix(path.Clean(filepath.ToSlash(p.opts.TestFiles)))
	for _, src := range files {
		rel := src.Path
		if base != "" {
			if r, err := filepath.Rel(filepath.FromSlash(base), filepath.FromSlash(src.Path)); err == nil {
				rel = filepath.ToSlash(r)
			}
		}

		res, err := p.Transpiler.Transform(ctx, &domain.TransformRequest{
			Sources:         []domain.Source{src},
			OutputName:      path.Base(rel),
			Module:          domain.ModuleIgnore,
			Target:          p.project.Transpile.Target,
			SourceMap:       domain.SourceMapInline,
			LowerGenerators: p.opts.Regenerator,
		})
		if err != nil {
			return err
		}

		if err := p.writeFile(out, path.Join(p.project.Layout.BuildDir, rel), res.Code); err != nil {
			return err
		}
	}

	return nil
}

// readSources resolves patterns in order and reads each file.
// Source paths are slash-separated and relative to the project root.
func (p *Pipeline) readSources(patterns []string) ([]domain.Source, error) {
	files, err := p.Resolver.ResolveInputs(patterns, p.project.Root)
	if err != nil {
		return nil, err
	}

	sources := make([]domain.Source, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "file", file)
		}
		sources = append(sources, domain.Source{Path: p.relative(file), Content: content})
	}
	return sources, nil
}

// writeFile writes data to a path relative to the project root, creating parent directories.
func (p *Pipeline) writeFile(out io.Writer, rel string, data []byte) error {
	dst := p.abs(rel)
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "file", rel)
	}
	if err := os.WriteFile(dst, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "file", rel)
	}
	_, _ = fmt.Fprintf(out, "wrote %s\n", filepath.ToSlash(rel))
	return nil
}

func (p *Pipeline) abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.project.Root, filepath.FromSlash(rel))
}

func (p *Pipeline) relative(file string) string {
	rel, err := filepath.Rel(p.project.Root, file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}
