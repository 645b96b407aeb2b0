// Package build drives page processing: it discovers Markdown pages under
// the docs directory, runs each through the inclusion engine and mirrors
// the tree into the output directory, optionally rendering HTML.
package build

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/mdinclude/internal/config"
	"git.home.luguber.info/inful/mdinclude/internal/httpcache"
	"git.home.luguber.info/inful/mdinclude/internal/include"
	"git.home.luguber.info/inful/mdinclude/internal/logfields"
	"git.home.luguber.info/inful/mdinclude/internal/metrics"
	"git.home.luguber.info/inful/mdinclude/internal/watch"
)

// Builder wires the inclusion engine into a docs-tree build.
type Builder struct {
	cfg       *config.Config
	logger    *slog.Logger
	engine    *include.Engine
	registrar *watch.Registrar
	recorder  metrics.Recorder
	renderer  goldmark.Markdown
	docsDir   string
	outDir    string
}

// NewBuilder assembles a builder from configuration. Expired URL cache
// entries are cleaned up on construction.
func NewBuilder(cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) (*Builder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	recorder = metrics.OrNoop(recorder)

	docsDir, err := filepath.Abs(cfg.Docs.Directory)
	if err != nil {
		return nil, fmt.Errorf("resolving docs dir: %w", err)
	}
	if st, err := os.Stat(docsDir); err != nil || !st.IsDir() {
		return nil, fmt.Errorf("docs dir not found or not a directory: %s", docsDir)
	}
	outDir, err := filepath.Abs(cfg.Output.Directory)
	if err != nil {
		return nil, fmt.Errorf("resolving output dir: %w", err)
	}

	var cache *httpcache.Cache
	if cfg.Cache.TTLSeconds > 0 {
		cache = httpcache.New(cfg.Cache.Directory, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		if removed, err := cache.Clean(); err != nil {
			logger.Warn("cache cleanup failed", logfields.Error(err))
		} else if removed > 0 {
			logger.Debug("removed expired cache entries", "count", removed)
		}
	}

	registrar := watch.NewRegistrar()
	engine := include.New(include.Options{
		OpeningTag:          cfg.Directives.OpeningTag,
		ClosingTag:          cfg.Directives.ClosingTag,
		IncludeName:         cfg.Directives.Include,
		IncludeMarkdownName: cfg.Directives.IncludeMarkdown,
		DocsDir:             docsDir,
		Defaults:            engineDefaults(cfg),
		Exclude:             cfg.Exclude,
		Logger:              logger,
		Fetcher:             httpcache.NewFetcher(cache, recorder),
		Registrar:           registrar,
		Metrics:             recorder,
	})

	b := &Builder{
		cfg:       cfg,
		logger:    logger,
		engine:    engine,
		registrar: registrar,
		recorder:  recorder,
		docsDir:   docsDir,
		outDir:    outDir,
	}
	if cfg.Output.Render == config.RenderModeHTML {
		b.renderer = goldmark.New()
	}
	return b, nil
}

func engineDefaults(cfg *config.Config) include.Defaults {
	defs := include.NewDefaults()
	defs.Encoding = cfg.Defaults.Encoding
	defs.Start = cfg.Defaults.Start
	defs.End = cfg.Defaults.End
	defs.PreserveIncluderIndent = cfg.Defaults.PreserveIncluderIndentValue()
	defs.Dedent = cfg.Defaults.DedentValue()
	defs.TrailingNewlines = cfg.Defaults.TrailingNewlinesValue()
	defs.Recursive = cfg.Defaults.RecursiveValue()
	defs.RewriteRelativeURLs = cfg.Defaults.RewriteRelativeURLsValue()
	defs.Comments = cfg.Defaults.CommentsValue()
	defs.HeadingOffset = cfg.Defaults.HeadingOffset
	return defs
}

// DocsDir returns the absolute docs root.
func (b *Builder) DocsDir() string { return b.docsDir }

// OutDir returns the absolute output root.
func (b *Builder) OutDir() string { return b.outDir }

// Registrar exposes the include-file registrar for watch-mode diffing.
func (b *Builder) Registrar() *watch.Registrar { return b.registrar }

// DiscoverPages walks the docs tree and returns every file path, Markdown
// pages and plain assets alike, sorted for deterministic builds.
func (b *Builder) DiscoverPages() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(b.docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != b.docsDir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking docs dir: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// BuildAll processes the whole docs tree into the output directory. The
// first fatal page error aborts the build; no partial page output is
// written for a failed page.
func (b *Builder) BuildAll(ctx context.Context) error {
	if b.cfg.Output.Clean {
		if err := os.RemoveAll(b.outDir); err != nil {
			return fmt.Errorf("cleaning output dir: %w", err)
		}
	}

	paths, err := b.DiscoverPages()
	if err != nil {
		return err
	}

	var pages, assets int
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if isMarkdown(path) {
			if err := b.buildPage(ctx, path); err != nil {
				return err
			}
			pages++
			continue
		}
		if err := b.copyAsset(path); err != nil {
			return err
		}
		assets++
	}

	b.logger.Info("build finished", "pages", pages, "assets", assets)
	return nil
}

// ProcessFile runs one Markdown file through the engine and returns the
// processed content without writing anything.
func (b *Builder) ProcessFile(ctx context.Context, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving page path: %w", err)
	}
	raw, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("reading page: %w", err)
	}
	return b.engine.ProcessPage(ctx, string(raw), abs)
}

func (b *Builder) buildPage(ctx context.Context, srcPath string) error {
	started := time.Now()
	processed, err := b.ProcessFile(ctx, srcPath)
	b.recorder.ObservePageDuration(time.Since(started))
	if err != nil {
		b.recorder.IncPageResult(metrics.ResultFatal)
		return err
	}
	b.recorder.IncPageResult(metrics.ResultSuccess)

	outPath := b.outputPathFor(srcPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	data := []byte(processed)
	if b.renderer != nil {
		var buf bytes.Buffer
		if err := b.renderer.Convert(data, &buf); err != nil {
			return fmt.Errorf("rendering '%s' to HTML: %w", srcPath, err)
		}
		data = buf.Bytes()
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing page output: %w", err)
	}

	b.logger.Debug("page processed",
		logfields.Page(srcPath),
		logfields.DurationMS(float64(time.Since(started).Microseconds())/1000.0))
	return nil
}

// outputPathFor mirrors a docs path into the output tree, swapping the
// extension to .html when rendering HTML.
func (b *Builder) outputPathFor(srcPath string) string {
	rel, err := filepath.Rel(b.docsDir, srcPath)
	if err != nil {
		rel = filepath.Base(srcPath)
	}
	out := filepath.Join(b.outDir, rel)
	if b.renderer != nil && isMarkdown(out) {
		out = strings.TrimSuffix(out, filepath.Ext(out)) + ".html"
	}
	return out
}

func (b *Builder) copyAsset(srcPath string) error {
	outPath := b.outputPathFor(srcPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading asset: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing asset: %w", err)
	}
	return nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
