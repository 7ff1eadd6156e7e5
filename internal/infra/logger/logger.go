// Package logger builds the slog.Logger handed to every other layer.
// There is no package-level logger on purpose; callers receive one
// explicitly and tests can substitute their own.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Levels lists the names accepted by Parse, in increasing severity.
var Levels = []string{"DEBUG", "INFO", "WARNING"}

// Parse maps a level name to its slog level. Names are matched
// case-insensitively and WARN is accepted as a synonym for WARNING.
func Parse(name string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARNING", "WARN":
		return slog.LevelWarn, nil
	}
	return 0, fmt.Errorf("unknown log level %q (valid: %s)", name, strings.Join(Levels, ", "))
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
