package config

// Built-in fallbacks applied by ApplyDefaults.
const (
	DefaultDocsDirectory   = "docs"
	DefaultOutputDirectory = "site"
	DefaultEncoding        = "utf-8"
	DefaultServePort       = 8000
	DefaultDebounceMS      = 300
	DefaultCacheDirectory  = ".mdinclude-cache"
)

// ApplyDefaults fills unset fields with their documented defaults.
func (c *Config) ApplyDefaults() {
	if c.Docs.Directory == "" {
		c.Docs.Directory = DefaultDocsDirectory
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDirectory
	}
	if c.Output.Render == "" {
		c.Output.Render = RenderModeMarkdown
	}
	if c.Defaults.Encoding == "" {
		c.Defaults.Encoding = DefaultEncoding
	}
	if c.Cache.TTLSeconds > 0 && c.Cache.Directory == "" {
		c.Cache.Directory = DefaultCacheDirectory
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultServePort
	}
	if c.Serve.DebounceMS == 0 {
		c.Serve.DebounceMS = DefaultDebounceMS
	}
}

// boolOr dereferences an optional flag against its built-in default.
func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// PreserveIncluderIndentValue returns the effective flag default.
func (d ArgumentDefaults) PreserveIncluderIndentValue() bool {
	return boolOr(d.PreserveIncluderIndent, true)
}

func (d ArgumentDefaults) DedentValue() bool {
	return boolOr(d.Dedent, false)
}

func (d ArgumentDefaults) TrailingNewlinesValue() bool {
	return boolOr(d.TrailingNewlines, true)
}

func (d ArgumentDefaults) RecursiveValue() bool {
	return boolOr(d.Recursive, true)
}

func (d ArgumentDefaults) RewriteRelativeURLsValue() bool {
	return boolOr(d.RewriteRelativeURLs, true)
}

func (d ArgumentDefaults) CommentsValue() bool {
	return boolOr(d.Comments, false)
}
