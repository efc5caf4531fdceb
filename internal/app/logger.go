package app

import (
	"os"

	"cargo-platform-go/internal/config"
	"cargo-platform-go/internal/logx"
)

// NewLogger returns a JSON logger on stdout at the configured level.
func NewLogger(cfg *config.Config) logx.Logger {
	return logx.NewJSON(os.Stdout, cfg.LogLevel).With(logx.String("service", "cargo-platform"))
}
