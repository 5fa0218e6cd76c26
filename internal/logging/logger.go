// Package logging provides config-driven categorized file-based logging.
// Logs are written to .commentgen/logs/ with a separate file per category.
// Logging is controlled by debug_mode in the config file - when false, no
// logs are written.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system.
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup and initialization
	CategorySession Category = "session" // Session state, persistence
	CategoryDataset Category = "dataset" // File import, schema classification
	CategoryAPI     Category = "api"     // LLM API calls
	CategoryExport  Category = "export"  // CSV/XLSX export
)

// Logger wraps a zap sugared logger bound to one category file.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	logsDir   string
	enabled   bool
)

// Initialize sets up the logging directory. Should be called once at startup
// with the workspace path. When debugMode is false this is a silent no-op and
// all loggers discard their output.
func Initialize(workspace string, debugMode bool) error {
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}

	enabled = debugMode
	if !enabled {
		return nil
	}

	logsDir = filepath.Join(workspace, ".commentgen", "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("logging initialized: dir=%s", logsDir)
	return nil
}

// Get returns the logger for a category, creating it on first use.
func Get(category Category) *Logger {
	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l := newLogger(category)
	loggers[category] = l
	return l
}

func newLogger(category Category) *Logger {
	if !enabled {
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}

	path := filepath.Join(logsDir, string(category)+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] cannot open %s: %v\n", path, err)
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(f),
		zapcore.DebugLevel,
	)
	return &Logger{
		category: category,
		sugar:    zap.New(core).Sugar().Named(string(category)),
	}
}

// Debug logs a debug-level message.
func (l *Logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

// Info logs an info-level message.
func (l *Logger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning-level message.
func (l *Logger) Warn(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error-level message.
func (l *Logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

// Convenience helpers matching call sites spread across packages.

func SessionDebug(format string, args ...any) { Get(CategorySession).Debug(format, args...) }
func SessionWarn(format string, args ...any)  { Get(CategorySession).Warn(format, args...) }
func DatasetDebug(format string, args ...any) { Get(CategoryDataset).Debug(format, args...) }
func APIDebug(format string, args ...any)     { Get(CategoryAPI).Debug(format, args...) }
func APIError(format string, args ...any)     { Get(CategoryAPI).Error(format, args...) }
func ExportDebug(format string, args ...any)  { Get(CategoryExport).Debug(format, args...) }
