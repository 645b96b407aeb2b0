// Package config defines the YAML configuration schema: docs and output
// directories, directive tag customization, page-level argument defaults,
// the global exclude list and the URL cache TTL.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Docs       DocsConfig       `yaml:"docs"`
	Output     OutputConfig     `yaml:"output"`
	Directives DirectivesConfig `yaml:"directives"`
	Defaults   ArgumentDefaults `yaml:"defaults"`
	Exclude    []string         `yaml:"exclude,omitempty"`
	Cache      CacheConfig      `yaml:"cache"`
	Logging    LoggingConfig    `yaml:"logging"`
	Serve      ServeConfig      `yaml:"serve"`
}

// DocsConfig locates the documentation source tree.
type DocsConfig struct {
	Directory string `yaml:"directory"`
}

// OutputConfig controls where and how processed pages are written.
type OutputConfig struct {
	Directory string     `yaml:"directory"`
	Clean     bool       `yaml:"clean"`
	Render    RenderMode `yaml:"render,omitempty"`
}

// DirectivesConfig customizes the directive syntax per project.
type DirectivesConfig struct {
	OpeningTag      string `yaml:"opening_tag,omitempty"`
	ClosingTag      string `yaml:"closing_tag,omitempty"`
	Include         string `yaml:"include,omitempty"`
	IncludeMarkdown string `yaml:"include_markdown,omitempty"`
}

// ArgumentDefaults carries the page-level defaults applied when a directive
// omits an argument. Pointer fields distinguish "unset" from an explicit
// false, since several flags default to true.
type ArgumentDefaults struct {
	Encoding               string `yaml:"encoding,omitempty"`
	Start                  string `yaml:"start,omitempty"`
	End                    string `yaml:"end,omitempty"`
	PreserveIncluderIndent *bool  `yaml:"preserve_includer_indent,omitempty"`
	Dedent                 *bool  `yaml:"dedent,omitempty"`
	TrailingNewlines       *bool  `yaml:"trailing_newlines,omitempty"`
	Recursive              *bool  `yaml:"recursive,omitempty"`
	RewriteRelativeURLs    *bool  `yaml:"rewrite_relative_urls,omitempty"`
	Comments               *bool  `yaml:"comments,omitempty"`
	HeadingOffset          int    `yaml:"heading_offset,omitempty"`
}

// CacheConfig enables the URL content cache. A zero TTL disables caching.
type CacheConfig struct {
	TTLSeconds int    `yaml:"ttl,omitempty"`
	Directory  string `yaml:"directory,omitempty"`
}

// LoggingConfig selects log verbosity and output format.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug|info|warn|error
	Format string `yaml:"format,omitempty"` // text|json
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Port       int `yaml:"port,omitempty"`
	DebounceMS int `yaml:"debounce_ms,omitempty"`
}

// Load loads configuration from the specified file. A .env file next to the
// working directory is loaded first so ${VAR} references in the YAML can be
// expanded from it.
func Load(configPath string) (*Config, error) {
	// Missing .env files are fine; existing process env wins either way.
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
