// logutil.go - slog Logger mit zusaetzlichem TRACE-Level
package logutil

import (
	"io"
	"log/slog"
	"path/filepath"
)

// LevelTrace liegt unterhalb von Debug.
const LevelTrace slog.Level = -8

// NewLogger erstellt einen Text-Logger mit kurzen Quelldateinamen.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelTrace {
					attr.Value = slog.StringValue("TRACE")
				}
			case slog.SourceKey:
				if source, ok := attr.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			return attr
		},
	}))
}
