// Package logging provides categorized zap loggers for PrivacyPal.
// Until Init is called every category logs to a no-op core, so library code
// and tests stay silent.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, config, client construction
	CategoryScanner  Category = "scanner"  // Pattern triage
	CategorySentinel Category = "sentinel" // Verdict adjudication
	CategoryCoach    Category = "coach"    // Coaching drafts
	CategoryPipeline Category = "pipeline" // Orchestration
	CategoryOracle   Category = "oracle"   // LLM API calls
	CategoryFeed     Category = "feed"     // Feed loading
)

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Options controls how the root logger is built.
type Options struct {
	Level   string // debug, info, warn, error
	Format  string // json, console
	Verbose bool   // forces debug level
}

// Init builds the root logger and installs it for every category.
func Init(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	if opts.Format == "console" || opts.Format == "text" {
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetRoot(logger)
	return logger, nil
}

// SetRoot replaces the root logger. Passing nil restores the no-op logger.
func SetRoot(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mu.Lock()
	root = logger
	mu.Unlock()
}

// Get returns the logger for a category.
func Get(category Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(string(category))
}

// Sync flushes the root logger.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return root.Sync()
}
