package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "docs:\n  directory: docs\n"))
	require.NoError(t, err)

	require.Equal(t, "docs", cfg.Docs.Directory)
	require.Equal(t, DefaultOutputDirectory, cfg.Output.Directory)
	require.Equal(t, RenderModeMarkdown, cfg.Output.Render)
	require.Equal(t, DefaultEncoding, cfg.Defaults.Encoding)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)
	require.Equal(t, DefaultServePort, cfg.Serve.Port)
	require.Equal(t, DefaultDebounceMS, cfg.Serve.DebounceMS)
}

func TestLoad_FullDocument(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
docs:
  directory: documentation
output:
  directory: public
  clean: true
  render: html
directives:
  opening_tag: "{!"
  closing_tag: "!}"
  include: insert
defaults:
  start: "<!--s-->"
  preserve_includer_indent: false
  comments: true
exclude:
  - drafts/*.md
cache:
  ttl: 600
logging:
  level: debug
  format: json
serve:
  port: 9000
  debounce_ms: 100
`))
	require.NoError(t, err)

	require.Equal(t, "documentation", cfg.Docs.Directory)
	require.True(t, cfg.Output.Clean)
	require.Equal(t, RenderModeHTML, cfg.Output.Render)
	require.Equal(t, "{!", cfg.Directives.OpeningTag)
	require.Equal(t, "insert", cfg.Directives.Include)
	require.Equal(t, "<!--s-->", cfg.Defaults.Start)
	require.False(t, cfg.Defaults.PreserveIncluderIndentValue())
	require.True(t, cfg.Defaults.CommentsValue())
	require.Equal(t, []string{"drafts/*.md"}, cfg.Exclude)
	require.Equal(t, 600, cfg.Cache.TTLSeconds)
	require.Equal(t, DefaultCacheDirectory, cfg.Cache.Directory, "ttl without directory uses the default")
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, 9000, cfg.Serve.Port)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("MDINCLUDE_TEST_DOCS", "envdocs")
	cfg, err := Load(writeConfig(t, "docs:\n  directory: ${MDINCLUDE_TEST_DOCS}\n"))
	require.NoError(t, err)
	require.Equal(t, "envdocs", cfg.Docs.Directory)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "docs: [unclosed\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unmarshaling config")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.ApplyDefaults()
		return c
	}

	require.NoError(t, base().Validate())

	c := base()
	c.Directives.OpeningTag = "{%"
	c.Directives.ClosingTag = "{%"
	require.ErrorContains(t, c.Validate(), "must differ")

	c = base()
	c.Directives.OpeningTag = "{!"
	require.ErrorContains(t, c.Validate(), "set together")

	c = base()
	c.Output.Render = "pdf"
	require.ErrorContains(t, c.Validate(), "render mode")

	c = base()
	c.Defaults.Encoding = "no-such-encoding"
	require.ErrorContains(t, c.Validate(), "encoding")

	c = base()
	c.Cache.TTLSeconds = -1
	require.ErrorContains(t, c.Validate(), "ttl")

	c = base()
	c.Serve.Port = 70000
	require.ErrorContains(t, c.Validate(), "port")

	c = base()
	c.Logging.Level = "loud"
	require.ErrorContains(t, c.Validate(), "log level")

	c = base()
	c.Logging.Format = "xml"
	require.ErrorContains(t, c.Validate(), "log format")
}

func TestArgumentDefaults_FlagAccessors(t *testing.T) {
	var d ArgumentDefaults
	require.True(t, d.PreserveIncluderIndentValue())
	require.False(t, d.DedentValue())
	require.True(t, d.TrailingNewlinesValue())
	require.True(t, d.RecursiveValue())
	require.True(t, d.RewriteRelativeURLsValue())
	require.False(t, d.CommentsValue())

	f := false
	d.PreserveIncluderIndent = &f
	require.False(t, d.PreserveIncluderIndentValue())
}

func TestNormalizeRenderMode(t *testing.T) {
	require.Equal(t, RenderModeHTML, NormalizeRenderMode("html"))
	require.Equal(t, RenderModeMarkdown, NormalizeRenderMode("markdown"))
	require.Equal(t, RenderModeMarkdown, NormalizeRenderMode(""))
	require.Equal(t, RenderModeMarkdown, NormalizeRenderMode("bogus"))
}
