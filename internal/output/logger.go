/*
PURPOSE:
  Provides a structured logger for benchfetch.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - "Sane" CLI output. Not spammy.
  - Per-request detail only on demand (--verbose).

  Implementation-discovered:
  - Needs to support Debug/Info/Warn/Error levels.

ARCHITECTURE INTEGRATION:
  - Used everywhere.

ERROR HANDLING:
  - N/A

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).

USAGE:
  output.Logger.Info("message", "key", "value")

SELF-HEALING INSTRUCTIONS:
  - Ensure Go 1.21+ is used.

RELATED FILES:
  - internal/cli/root.go (wires the --verbose flag to Init)

MAINTENANCE:
  - JSON handler for non-interactive use?
*/

package output

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

func init() {
	Init(false)
}

// Init configures the default logger. Verbose lowers the threshold to
// debug so per-request detail shows up.
func Init(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	Logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}
