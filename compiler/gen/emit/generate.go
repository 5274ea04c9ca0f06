package emit

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/dave/jennifer/jen"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/beangen"
	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/gen"
)

// DefaultHeader is written at the top of emitted files unless the
// configuration sets another header.
const DefaultHeader = "Code generated by beangen. DO NOT EDIT."

// Generator writes the packages of a compiled outline to disk, one file
// per top-level type plus one factory file per package.
type Generator struct {
	outline *gen.Outline
	outDir  string
	base    string
	header  string
	workers int
	run     uuid.UUID
	log     *slog.Logger

	mu      sync.Mutex
	metrics *Metrics
}

// Metrics tracks what a generation run wrote.
type Metrics struct {
	FilesGenerated int
	TotalBytes     int64
}

// File is one rendered source file.
type File struct {
	// Dir is the output directory relative to the generator root.
	Dir string
	// Name is the file name.
	Name string
	// Package is the import path of the file's package.
	Package string
	// Code is the jennifer file.
	Code *jen.File
}

// NewGenerator creates a generator writing under outDir.
func NewGenerator(o *gen.Outline, outDir string) *Generator {
	cfg := o.Config()
	g := &Generator{
		outline: o,
		outDir:  outDir,
		header:  DefaultHeader,
		workers: runtime.GOMAXPROCS(0),
		run:     uuid.New(),
		log:     slog.Default(),
		metrics: &Metrics{},
	}
	if cfg.Header != "" {
		g.header = cfg.Header
	}
	if cfg.Logger != nil {
		g.log = cfg.Logger
	}
	return g
}

// WithWorkers sets the number of parallel writers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithHeader sets the file header comment.
func (g *Generator) WithHeader(header string) *Generator {
	if header != "" {
		g.header = header
	}
	return g
}

// WithBase sets the import path prefix mapped to the output directory.
// A package "example.com/po/items" with base "example.com/po" is written
// to "<outDir>/items". Packages outside base keep their full path.
func (g *Generator) WithBase(base string) *Generator {
	g.base = strings.TrimSuffix(base, "/")
	return g
}

// WithRunID sets the identifier recorded in the manifest.
func (g *Generator) WithRunID(id uuid.UUID) *Generator {
	g.run = id
	return g
}

// WithLogger sets the logger.
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	if l != nil {
		g.log = l
	}
	return g
}

// RunID returns the identifier of the generation run.
func (g *Generator) RunID() uuid.UUID { return g.run }

// Metrics returns the generation metrics.
func (g *Generator) Metrics() *Metrics {
	g.mu.Lock()
	defer g.mu.Unlock()
	m := *g.metrics
	return &m
}

// Dir returns the output directory of a package, relative to the root.
func (g *Generator) Dir(importPath string) string {
	switch {
	case g.base != "" && importPath == g.base:
		return "."
	case g.base != "" && strings.HasPrefix(importPath, g.base+"/"):
		return filepath.FromSlash(strings.TrimPrefix(importPath, g.base+"/"))
	default:
		return filepath.FromSlash(importPath)
	}
}

// Files renders every package of the outline. Types are ordered by
// package path and then by creation order.
func (g *Generator) Files() []*File {
	outlines := make(map[string]*gen.PackageOutline)
	for _, p := range g.outline.Packages() {
		outlines[p.Path()] = p
	}
	var files []*File
	for _, pkg := range g.outline.CodeModel().Packages() {
		r := &renderer{outline: g.outline, pkg: outlines[pkg.Path]}
		files = append(files, g.packageFiles(r, pkg)...)
	}
	return files
}

func (g *Generator) packageFiles(r *renderer, pkg *codemodel.Package) []*File {
	nested := make(map[*codemodel.Defined][]*codemodel.Defined)
	var top []*codemodel.Defined
	for _, d := range pkg.Types() {
		if d.Hidden {
			continue
		}
		if d.Outer == nil {
			top = append(top, d)
			continue
		}
		root := d.Outer
		for root.Outer != nil {
			root = root.Outer
		}
		nested[root] = append(nested[root], d)
	}
	dir := g.Dir(pkg.Path)
	names := make(map[string]struct{})
	files := make([]*File, 0, len(top)+1)
	for _, d := range top {
		f := g.newFile(pkg)
		r.define(f.Group, d)
		for _, n := range nested[d] {
			r.define(f.Group, n)
		}
		files = append(files, &File{
			Dir:     dir,
			Name:    fileName(names, d.Name),
			Package: pkg.Path,
			Code:    f,
		})
	}
	if len(pkg.Funcs) > 0 {
		f := g.newFile(pkg)
		r.factory(f.Group, pkg.Funcs)
		files = append(files, &File{
			Dir:     dir,
			Name:    fileName(names, "factory"),
			Package: pkg.Path,
			Code:    f,
		})
	}
	return files
}

// newFile creates a new jennifer file with the header comment.
func (g *Generator) newFile(pkg *codemodel.Package) *jen.File {
	f := jen.NewFilePathName(pkg.Path, pkg.Name())
	f.HeaderComment(g.header)
	if pkg.Doc != "" {
		f.PackageComment(pkg.Doc)
	}
	f.ImportName(runtimePkg, "beangen")
	return f
}

// fileName returns a unique snake case file name for a type.
func fileName(taken map[string]struct{}, name string) string {
	base := gen.Snake(name)
	if strings.HasSuffix(base, "_test") {
		base += "_"
	}
	n := base
	for i := 2; ; i++ {
		if _, ok := taken[n]; !ok {
			break
		}
		n = fmt.Sprintf("%s_%d", base, i)
	}
	taken[n] = struct{}{}
	return n + ".go"
}

// Generate renders and writes all files in parallel. With the manifest
// feature enabled it also writes the run manifest.
func (g *Generator) Generate(ctx context.Context) error {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	files := g.Files()
	g.log.Debug("writing files", "count", len(files), "dir", g.outDir, "run", g.run)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.writeFile(f)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	if g.outline.Config().FeatureEnabled(gen.FeatureManifest.Name) {
		m := NewManifest(g.outline, g.run)
		for _, f := range files {
			m.AddFile(f.Package, path.Join(filepath.ToSlash(f.Dir), f.Name))
		}
		if err := WriteManifest(filepath.Join(g.outDir, ManifestName), m); err != nil {
			return err
		}
	}
	m := g.Metrics()
	g.log.Info("generated files", "files", m.FilesGenerated, "bytes", m.TotalBytes, "version", beangen.Version)
	return nil
}

// writeFile renders f, formats it and writes it below the output root.
func (g *Generator) writeFile(f *File) error {
	var buf bytes.Buffer
	if err := f.Code.Render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", f.Name, err)
	}
	fullPath := filepath.Join(g.outDir, f.Dir, f.Name)
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		// Keep the unformatted output around for inspection.
		debugPath := fullPath + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return fmt.Errorf("format %s: %w (unformatted written to %s)", f.Name, err, debugPath)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Name, err)
	}
	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.Name, err)
	}

	g.mu.Lock()
	g.metrics.FilesGenerated++
	g.metrics.TotalBytes += int64(len(formatted))
	g.mu.Unlock()
	return nil
}

// Generate writes a compiled outline to the configured target directory.
func Generate(ctx context.Context, o *gen.Outline) error {
	cfg := o.Config()
	if cfg.Target == "" {
		return gen.NewConfigError("Target", nil, "missing target directory in config")
	}
	return NewGenerator(o, cfg.Target).Generate(ctx)
}
