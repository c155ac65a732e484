package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyCategory   = "category"
	KeyTag        = "tag"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyTemplate   = "template"
	KeyEncoding   = "encoding"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func Tag(t string) slog.Attr          { return slog.String(KeyTag, t) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Encoding(name string) slog.Attr  { return slog.String(KeyEncoding, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
