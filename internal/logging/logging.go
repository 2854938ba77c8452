// Package logging builds the zap logger shared by the binaries.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwvelando/plan-pricing/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Defaults applied when the configuration leaves a field empty.
const (
	DefaultLevel  = "info"
	DefaultFormat = "json"
)

// New creates a zap logger from cfg. A non-empty levelOverride (the CLI
// -log-level flag) wins over cfg.Level.
func New(cfg config.LoggingConfig, levelOverride string) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level, levelOverride)
	if err != nil {
		return nil, err
	}

	format := cfg.Format
	if format == "" {
		format = DefaultFormat
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if cfg.OutputFile != "" {
		if err := ensureWritable(cfg.OutputFile); err != nil {
			return nil, err
		}
		zapConfig.OutputPaths = []string{cfg.OutputFile}
		zapConfig.ErrorOutputPaths = []string{cfg.OutputFile}
	}

	return zapConfig.Build()
}

func parseLevel(configured, override string) (zapcore.Level, error) {
	level := configured
	if override != "" {
		level = override
	}
	switch level {
	case "":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
}

// ensureWritable creates the log directory and checks the file can be opened.
func ensureWritable(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return file.Close()
}
