// Package include implements the inclusion engine. Each page render scans
// for include-markdown directives first and include directives second,
// replaces every match with an opaque placeholder token while its content is
// resolved, and substitutes the tokens once both passes are done, so
// directive-shaped text produced by an expansion is never re-interpreted.
package include

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/mdinclude/internal/charset"
	"git.home.luguber.info/inful/mdinclude/internal/directive"
	"git.home.luguber.info/inful/mdinclude/internal/errors"
	"git.home.luguber.info/inful/mdinclude/internal/httpcache"
	"git.home.luguber.info/inful/mdinclude/internal/logfields"
	"git.home.luguber.info/inful/mdinclude/internal/metrics"
	"git.home.luguber.info/inful/mdinclude/internal/resolve"
	"git.home.luguber.info/inful/mdinclude/internal/transform"
)

// maxInclusionDepth backstops pathological non-self-referential include
// chains; direct and transitive self-inclusion is caught by the active-file
// stack before the cap is reached.
const maxInclusionDepth = 100

// Registrar receives every locally resolved include target, feeding the
// live-reload watch set. URL targets are never registered.
type Registrar interface {
	Register(path string)
}

// Defaults carries the page-level argument defaults applied when a
// directive omits an argument. Empty Start/End/Order mean unset.
type Defaults struct {
	Start                  string
	End                    string
	Encoding               string
	Order                  directive.Order
	PreserveIncluderIndent bool
	Dedent                 bool
	TrailingNewlines       bool
	Recursive              bool
	RewriteRelativeURLs    bool
	Comments               bool
	HeadingOffset          int
}

// NewDefaults returns the documented argument defaults.
func NewDefaults() Defaults {
	return Defaults{
		Encoding:               charset.DefaultEncoding,
		Order:                  directive.Order{Type: directive.OrderAlpha, By: directive.OrderByPath},
		PreserveIncluderIndent: true,
		TrailingNewlines:       true,
		Recursive:              true,
		RewriteRelativeURLs:    true,
	}
}

// Options configures an Engine.
type Options struct {
	OpeningTag          string
	ClosingTag          string
	IncludeName         string
	IncludeMarkdownName string
	DocsDir             string
	Defaults            Defaults
	Exclude             []string // global glob list, pages and targets
	Logger              *slog.Logger
	Fetcher             *httpcache.Fetcher
	Registrar           Registrar
	Metrics             metrics.Recorder
}

// Engine resolves the include directives of Markdown pages.
type Engine struct {
	patterns  directive.Patterns
	docsDir   string
	defaults  Defaults
	exclude   []string
	logger    *slog.Logger
	fetcher   *httpcache.Fetcher
	registrar Registrar
	metrics   metrics.Recorder
}

// New builds an engine. Tag delimiters and directive names fall back to
// their defaults when empty; a nil fetcher gets an uncached HTTP client.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := metrics.OrNoop(opts.Metrics)
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = httpcache.NewFetcher(nil, recorder)
	}
	return &Engine{
		patterns: directive.Compile(
			opts.OpeningTag, opts.ClosingTag,
			opts.IncludeName, opts.IncludeMarkdownName,
		),
		docsDir:   opts.DocsDir,
		defaults:  opts.Defaults,
		exclude:   opts.Exclude,
		logger:    logger,
		fetcher:   fetcher,
		registrar: opts.Registrar,
		metrics:   recorder,
	}
}

// ProcessPage expands every directive of one page. pageSrcPath is empty for
// generated content not read from a file. Pages matching the global exclude
// list are returned untouched. A fatal directive error aborts the whole
// page; no partial substitution is returned.
func (e *Engine) ProcessPage(ctx context.Context, markdown, pageSrcPath string) (string, error) {
	ignorePaths := resolve.GlobalExcludes(e.exclude, e.docsDir)
	if pageSrcPath != "" && slices.Contains(ignorePaths, filepath.Clean(pageSrcPath)) {
		return markdown, nil
	}

	x := &expansion{engine: e, ignorePaths: ignorePaths}
	if pageSrcPath != "" {
		x.active = append(x.active, pageSrcPath)
	}
	return x.expand(ctx, markdown, pageSrcPath, 0)
}

// expansion is the mutable state of one top-level page render: the global
// ignore paths and the stack of files currently being expanded, used for
// cycle detection across recursion.
type expansion struct {
	engine      *Engine
	ignorePaths []string
	active      []string
}

// expand runs both directive passes over text and substitutes the resulting
// placeholders. Recursive inclusions re-enter here with the included file as
// the page context.
func (x *expansion) expand(ctx context.Context, text, pagePath string, cum int) (string, error) {
	text = escapePlaceholders(text)
	table := &placeholderTable{}

	text, err := x.expandKind(ctx, table, text, pagePath, directive.KindIncludeMarkdown,
		x.engine.patterns.IncludeMarkdown, cum)
	if err != nil {
		return "", err
	}
	text, err = x.expandKind(ctx, table, text, pagePath, directive.KindInclude,
		x.engine.patterns.Include, cum)
	if err != nil {
		return "", err
	}

	return unescapePlaceholders(table.substitute(text)), nil
}

func (x *expansion) expandKind(
	ctx context.Context,
	table *placeholderTable,
	text, pagePath, kind string,
	re *regexp.Regexp,
	cum int,
) (string, error) {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, loc := range locs {
		m := directive.NewMatch(kind, text, loc)
		content, err := x.resolveDirective(ctx, text, pagePath, m, cum)
		if err != nil {
			return "", err
		}
		b.WriteString(text[last:loc[0]])
		b.WriteString(table.save(content))
		last = loc[1]
		x.engine.metrics.IncDirectiveResolved(kind)
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// resolveDirective runs one directive occurrence through argument parsing,
// target resolution, content loading and the per-kind transform pipeline.
func (x *expansion) resolveDirective(
	ctx context.Context,
	page, pagePath string,
	m directive.Match,
	cum int,
) (string, error) {
	e := x.engine
	lineno := transform.LinenoFromContentStart(page, m.Start)
	location := transform.FileLinenoMessage(pagePath, e.docsDir, lineno)

	if m.Filename == "" {
		return "", errors.Directivef(
			"found no path passed including with '%s' directive at %s", m.Kind, location)
	}

	used := map[string]bool{}
	allowed := directive.AllowedArgs(m.Kind)
	for _, name := range directive.ScanArgumentNames(m.Arguments) {
		if !allowed[name] {
			e.warn("invalid directive argument, ignoring",
				logfields.Argument(name),
				logfields.Directive(m.Kind),
				logfields.Location(location))
			continue
		}
		used[name] = true
	}

	ignorePaths := slices.Clone(x.ignorePaths)
	if used[directive.ArgExclude] {
		value, ok := directive.StringArg(directive.ArgExclude, m.Arguments)
		if !ok {
			return "", emptyArgErr(directive.ArgExclude, m.Kind, location)
		}
		excluded, err := resolve.ExcludeTargets(value, pagePath, e.docsDir)
		if err != nil {
			return "", err
		}
		ignorePaths = append(ignorePaths, excluded...)
	}

	order := e.defaults.Order
	if used[directive.ArgOrder] {
		value, ok := directive.StringArg(directive.ArgOrder, m.Arguments)
		if !ok {
			return "", emptyArgErr(directive.ArgOrder, m.Kind, location)
		}
		if !directive.ValidOrderOption(value) {
			return "", errors.Directivef(
				"invalid value '%s' for the 'order' argument in '%s' directive at %s,"+
					" must match the pattern '%s'",
				value, m.Kind, location, directive.OrderOptionPattern())
		}
		order = directive.ParseOrderOption(value)
	}

	paths, isURL, err := resolve.IncludeTargets(m.Filename, pagePath, e.docsDir, ignorePaths, order)
	if err != nil {
		return "", err
	}
	if isURL && used[directive.ArgOrder] {
		e.warn("ignoring 'order' argument because the included path is a URL",
			logfields.Directive(m.Kind),
			logfields.Location(location))
	}
	if len(paths) == 0 {
		return "", errors.Resolutionf(
			"no files found including '%s' at %s", m.RawFilename, location)
	}
	if !isURL && e.registrar != nil {
		for _, p := range paths {
			e.registrar.Register(p)
		}
	}

	var start, end *string
	if e.defaults.Start != "" {
		s := e.defaults.Start
		start = &s
	}
	if used[directive.ArgStart] {
		value, ok := directive.StringArg(directive.ArgStart, m.Arguments)
		if !ok {
			return "", emptyArgErr(directive.ArgStart, m.Kind, location)
		}
		start = &value
	}
	if e.defaults.End != "" {
		s := e.defaults.End
		end = &s
	}
	if used[directive.ArgEnd] {
		value, ok := directive.StringArg(directive.ArgEnd, m.Arguments)
		if !ok {
			return "", emptyArgErr(directive.ArgEnd, m.Kind, location)
		}
		end = &value
	}

	encoding := e.defaults.Encoding
	if used[directive.ArgEncoding] {
		value, ok := directive.StringArg(directive.ArgEncoding, m.Arguments)
		if !ok {
			return "", emptyArgErr(directive.ArgEncoding, m.Kind, location)
		}
		encoding = value
	}

	parseBool := func(name string, def bool) (bool, error) {
		if !used[name] {
			return def, nil
		}
		value, invalid := directive.BoolArg(name, m.Arguments, def)
		if invalid {
			return false, errors.Directivef(
				"invalid value for '%s' argument of '%s' directive at %s,"+
					" possible values are true or false", name, m.Kind, location)
		}
		return value, nil
	}

	rewriteURLs, comments := e.defaults.RewriteRelativeURLs, e.defaults.Comments
	if m.Kind == directive.KindIncludeMarkdown {
		if rewriteURLs, err = parseBool(directive.ArgRewriteRelativeURLs, rewriteURLs); err != nil {
			return "", err
		}
		if comments, err = parseBool(directive.ArgComments, comments); err != nil {
			return "", err
		}
	}
	preserveIndent, err := parseBool(directive.ArgPreserveIncluderIndent, e.defaults.PreserveIncluderIndent)
	if err != nil {
		return "", err
	}
	dedent, err := parseBool(directive.ArgDedent, e.defaults.Dedent)
	if err != nil {
		return "", err
	}
	trailingNewlines, err := parseBool(directive.ArgTrailingNewlines, e.defaults.TrailingNewlines)
	if err != nil {
		return "", err
	}
	recursive, err := parseBool(directive.ArgRecursive, e.defaults.Recursive)
	if err != nil {
		return "", err
	}

	offset := e.defaults.HeadingOffset
	if m.Kind == directive.KindIncludeMarkdown && used[directive.ArgHeadingOffset] {
		raw, ok := directive.IntArg(directive.ArgHeadingOffset, m.Arguments)
		if !ok || raw == "" {
			return "", emptyArgErr(directive.ArgHeadingOffset, m.Kind, location)
		}
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return "", errors.Directivef(
				"invalid 'heading-offset' argument '%s' in '%s' directive at %s",
				raw, m.Kind, location)
		}
		offset = n
	}

	separator := ""
	if trailingNewlines {
		separator = "\n"
	}
	startEndPart := ""
	if start != nil || end != nil {
		startEndPart = quotedDelimiterPart(start) + quotedDelimiterPart(end)
	}

	// A delimiter counts as found when any resolved file contains it; the
	// warning fires only when it was absent from every file.
	startMissing := start != nil
	endMissing := end != nil

	var out strings.Builder
	for _, filePath := range paths {
		content, err := x.loadContent(ctx, filePath, encoding, isURL, location)
		if err != nil {
			return "", err
		}

		if start != nil || end != nil {
			var startNotFound, endNotFound bool
			content, startNotFound, endNotFound = transform.FilterInclusions(start, end, content)
			if startMissing && !startNotFound {
				startMissing = false
			}
			if endMissing && !endNotFound {
				endMissing = false
			}
		}

		if recursive {
			if slices.Contains(x.active, filePath) {
				return "", errors.Resolutionf(
					"circular inclusion of '%s' detected at %s",
					transform.SafeRelpath(filePath, e.docsDir), location)
			}
			if len(x.active) >= maxInclusionDepth {
				return "", errors.Resolutionf(
					"inclusion depth limit of %d exceeded at %s",
					maxInclusionDepth, location)
			}
			x.active = append(x.active, filePath)
			content, err = x.expand(ctx, content, filePath, 0)
			x.active = x.active[:len(x.active)-1]
			if err != nil {
				return "", err
			}
		}

		if !trailingNewlines {
			content = transform.RStripTrailingNewlines(content)
		}

		if m.Kind == directive.KindIncludeMarkdown {
			if rewriteURLs {
				switch {
				case pagePath == "":
					e.warn("relative URLs rewriting is not supported in generated pages",
						logfields.Directive(m.Kind),
						logfields.Location(location))
				case !isURL:
					content = transform.RewriteRelativeURLs(content, filePath, pagePath)
				}
			}

			if comments {
				content = m.Indent +
					"<!-- BEGIN INCLUDE " + html.EscapeString(m.Filename) +
					" " + startEndPart + "-->" + separator +
					content + separator + "<!-- END INCLUDE -->"
			} else {
				content = m.Indent + content
			}

			if dedent {
				content = transform.Dedent(content)
			}
			if preserveIndent && content != "" {
				content = transform.IndentTailLines(content, strings.Repeat(" ", len(m.Indent)))
			}
			if offset != 0 {
				content = transform.IncreaseHeadingsOffset(content, offset+cum)
			}
		} else {
			if dedent {
				content = transform.Dedent(content)
			}
			if preserveIndent {
				content = transform.IndentLines(content, m.Indent)
			} else {
				content = m.Indent + content
			}
		}

		out.WriteString(content)
	}

	if startMissing {
		e.warnDelimiterNotFound(directive.ArgStart, *start, m.Kind, location, paths)
	}
	if endMissing {
		e.warnDelimiterNotFound(directive.ArgEnd, *end, m.Kind, location, paths)
	}

	return out.String(), nil
}

// loadContent reads one resolved target, from the HTTP fetcher for URLs or
// from disk otherwise, decoded per the directive's encoding.
func (x *expansion) loadContent(
	ctx context.Context,
	filePath, encoding string,
	isURL bool,
	location string,
) (string, error) {
	e := x.engine
	var data []byte
	var err error
	if isURL {
		data, err = e.fetcher.Fetch(ctx, filePath)
		if err != nil {
			return "", err
		}
	} else {
		data, err = os.ReadFile(filePath)
		if err != nil {
			return "", errors.Filesystemf(err, "reading file '%s' included at %s",
				transform.SafeRelpath(filePath, e.docsDir), location)
		}
	}
	content, err := charset.Decode(data, encoding)
	if err != nil {
		return "", fmt.Errorf("decoding '%s' included at %s: %w", filePath, location, err)
	}
	return content, nil
}

// quotedDelimiterPart renders one delimiter of the wrapping comment header,
// HTML-escaped, with '' standing for an unset delimiter.
func quotedDelimiterPart(delimiter *string) string {
	if delimiter == nil || *delimiter == "" {
		return "'' "
	}
	return "'" + html.EscapeString(*delimiter) + "' "
}

func emptyArgErr(name, kind, location string) error {
	return errors.Directivef(
		"invalid empty '%s' argument in '%s' directive at %s", name, kind, location)
}

func (e *Engine) warn(msg string, attrs ...any) {
	e.logger.Warn(msg, attrs...)
	e.metrics.IncWarning()
}

func (e *Engine) warnDelimiterNotFound(name, value, kind, location string, paths []string) {
	files := make([]string, len(paths))
	for i, p := range paths {
		files[i] = transform.SafeRelpath(p, e.docsDir)
	}
	e.warn("delimiter not detected in any included file",
		logfields.Delimiter(name+"="+value),
		logfields.Directive(kind),
		logfields.Location(location),
		logfields.Files(strings.Join(files, ", ")))
}
