package config

import (
	"git.home.luguber.info/inful/mdinclude/internal/charset"
	"git.home.luguber.info/inful/mdinclude/internal/errors"
)

// Validate checks the configuration for inconsistencies that would only
// surface mid-build otherwise.
func (c *Config) Validate() error {
	if c.Directives.OpeningTag != "" && c.Directives.OpeningTag == c.Directives.ClosingTag {
		return errors.Configf("opening_tag and closing_tag must differ")
	}
	if (c.Directives.OpeningTag == "") != (c.Directives.ClosingTag == "") {
		return errors.Configf("opening_tag and closing_tag must be set together")
	}
	if c.Output.Render != RenderModeMarkdown && c.Output.Render != RenderModeHTML {
		return errors.Configf("invalid render mode %q, expected markdown or html", c.Output.Render)
	}
	if !charset.Known(c.Defaults.Encoding) {
		return errors.Configf("unknown default encoding %q", c.Defaults.Encoding)
	}
	if c.Cache.TTLSeconds < 0 {
		return errors.Configf("cache ttl must not be negative")
	}
	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		return errors.Configf("invalid serve port %d", c.Serve.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Configf("invalid log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.Configf("invalid log format %q", c.Logging.Format)
	}
	return nil
}
