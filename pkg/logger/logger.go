package logger

import (
	"log/slog"
	"os"
)

// Log is the process-wide structured logger. Init must run before the
// first request is served; packages use Log directly after that.
var Log *slog.Logger

func Init() {
	Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
