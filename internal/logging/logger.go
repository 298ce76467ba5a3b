package logging

import (
	"log/slog"
	"os"
)

// Setup installs the default JSON logger. It runs before the database is
// up; main swaps in the DB-backed handler once a connection exists.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
