package config

// RenderMode selects the output format of the build pipeline.
type RenderMode string

const (
	// RenderModeMarkdown writes the processed Markdown unchanged.
	RenderModeMarkdown RenderMode = "markdown"
	// RenderModeHTML converts processed pages to HTML.
	RenderModeHTML RenderMode = "html"
)

// NormalizeRenderMode maps a raw config value to a RenderMode, defaulting
// to Markdown output for unknown values.
func NormalizeRenderMode(raw string) RenderMode {
	switch RenderMode(raw) {
	case RenderModeHTML:
		return RenderModeHTML
	default:
		return RenderModeMarkdown
	}
}
