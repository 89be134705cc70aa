package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyTarget     = "target"
	KeyFormat     = "format"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyItem       = "item"
	KeyItemPath   = "item_path"
	KeyLink       = "link"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyURL        = "url"
	KeyStatus     = "status"
	KeyError      = "error"
	KeyJob        = "job"
	KeyInterval   = "interval"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Target(name string) slog.Attr       { return slog.String(KeyTarget, name) }
func Format(f string) slog.Attr          { return slog.String(KeyFormat, f) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func File(f string) slog.Attr            { return slog.String(KeyFile, f) }
func Item(text string) slog.Attr         { return slog.String(KeyItem, text) }
func ItemPath(p string) slog.Attr        { return slog.String(KeyItemPath, p) }
func Link(l string) slog.Attr            { return slog.String(KeyLink, l) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr    { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr          { return slog.String(KeyMethod, m) }
func URL(u string) slog.Attr             { return slog.String(KeyURL, u) }
func Status(code int) slog.Attr          { return slog.Int(KeyStatus, code) }
func Job(name string) slog.Attr          { return slog.String(KeyJob, name) }
func Interval(d time.Duration) slog.Attr { return slog.String(KeyInterval, d.String()) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
