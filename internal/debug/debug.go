// Package debug provides an opt-in structured logger for development
// diagnostics. When enabled via --debug, events are written to a log file
// under ~/.sentinelflow/debug/. When disabled (the default), all logging
// calls are no-ops.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvEnabled toggles debug logging without the flag.
const EnvEnabled = "SENTINELFLOW_DEBUG"

var (
	mu     sync.RWMutex
	logger *zap.Logger
	path   string
)

// ShouldEnableFromEnv reports whether the environment requests debug logging.
func ShouldEnableFromEnv() bool {
	v := os.Getenv(EnvEnabled)
	return v == "1" || v == "true"
}

// Init opens the debug log file and installs the global logger. Returns the
// log file path. Safe to call more than once; later calls reuse the first
// logger.
func Init() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("debug: resolving home: %w", err)
	}
	dir := filepath.Join(home, ".sentinelflow", "debug")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("debug: creating %s: %w", dir, err)
	}
	p := filepath.Join(dir, time.Now().Format("20060102-150405")+".log")
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("debug: open log %s: %w", p, err)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(f), zapcore.DebugLevel)
	logger = zap.New(core)
	path = p
	return p, nil
}

// Enabled reports whether the global logger is active.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return logger != nil
}

// Log writes one message under the given scope. No-op when disabled.
func Log(scope, msg string) {
	LogKV(scope, msg)
}

// LogKV writes one message with alternating key/value context fields.
// No-op when disabled.
func LogKV(scope, msg string, kv ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil {
		return
	}
	fields := make([]zap.Field, 0, len(kv)/2+1)
	fields = append(fields, zap.String("scope", scope))
	for i := 0; i+1 < len(kv); i += 2 {
		key, okKey := kv[i].(string)
		if !okKey {
			key = fmt.Sprint(kv[i])
		}
		fields = append(fields, zap.Any(key, kv[i+1]))
	}
	l.Debug(msg, fields...)
}

// Close flushes and releases the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		_ = logger.Sync()
		logger = nil
		path = ""
	}
}
