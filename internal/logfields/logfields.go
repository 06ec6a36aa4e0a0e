package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID       = "run_id"
	KeyPath        = "path"
	KeyDestination = "destination"
	KeyTheme       = "theme"
	KeyTemplate    = "template"
	KeyDialect     = "dialect"
	KeyStage       = "stage"
	KeyDurationMS  = "duration_ms"
	KeyAssets      = "assets"
	KeyKey         = "key"
	KeyEvent       = "event"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Destination(p string) slog.Attr  { return slog.String(KeyDestination, p) }
func Theme(name string) slog.Attr     { return slog.String(KeyTheme, name) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Dialect(d string) slog.Attr      { return slog.String(KeyDialect, d) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Assets(n int) slog.Attr          { return slog.Int(KeyAssets, n) }
func Key(k string) slog.Attr          { return slog.String(KeyKey, k) }
func Event(op string) slog.Attr       { return slog.String(KeyEvent, op) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
