package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPage       = "page"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyDirective  = "directive"
	KeyArgument   = "argument"
	KeyLocation   = "location"
	KeyFiles      = "files"
	KeyDelimiter  = "delimiter"
	KeyJobID      = "job_id"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Page(p string) slog.Attr          { return slog.String(KeyPage, p) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Directive(d string) slog.Attr     { return slog.String(KeyDirective, d) }
func Argument(a string) slog.Attr      { return slog.String(KeyArgument, a) }
func Location(l string) slog.Attr      { return slog.String(KeyLocation, l) }
func Files(fs string) slog.Attr        { return slog.String(KeyFiles, fs) }
func Delimiter(d string) slog.Attr     { return slog.String(KeyDelimiter, d) }
func JobID(id string) slog.Attr        { return slog.String(KeyJobID, id) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
