// Package log provides a small structured-logging abstraction used by the
// rest of this module (nbt and playerdata log through it).
//
// By default every package in this module logs to a no-op implementation,
// so embedding this module into a server costs nothing unless a logger is
// configured. Call SetLogger once, at process start, to route the
// module's log output through zerolog (via NewZerologAdapter) or any other
// backend that implements Logger.
//
// Example with zerolog:
//
//	import (
//	    "os"
//	    "github.com/rs/zerolog"
//	    "github.com/MythicSorcerer/azox-mc/log"
//	)
//
//	func main() {
//	    zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	    log.SetLogger(log.NewZerologAdapter(zlog))
//	    // ... load, edit, and save player files
//	}
package log

import "sync"

// Field is a structured key-value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

// F builds a Field. Typical fields logged by this module are paths, slot
// numbers, byte counts and wrapped errors.
//
//	log.Info("save complete", log.F("path", path), log.F("bytes", n))
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger is the interface this module logs through.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

var (
	mu     sync.RWMutex
	global Logger = &noopLogger{}
)

// SetLogger sets the process-wide logger used by this module. Passing nil
// restores the no-op default. Safe to call concurrently.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		global = &noopLogger{}
		return
	}
	global = l
}

// GetLogger returns the currently configured logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func Debug(msg string, fields ...Field) { GetLogger().Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { GetLogger().Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { GetLogger().Warn(msg, fields...) }
func Error(msg string, fields ...Field) { GetLogger().Error(msg, fields...) }
