// Package logger wraps zap for the whole process.
package logger

import "sync"

// Level names accepted by the log.level config key.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	shared     *Logger
	sharedOnce sync.Once
)

// Get builds the shared logger on first use. Only the first level passed wins.
func Get(level string) *Logger {
	sharedOnce.Do(func() {
		shared = newZapLogger(level)
	})
	return shared
}

// IsValidLevel reports whether level is one of the known level names.
func IsValidLevel(level string) bool {
	switch level {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return true
	}
	return false
}
