package log

import (
	"sync"
)

// EventLogger receives render, verify and clipboard events for display in the UI.
type EventLogger interface {
	LogEvent(source string, message string)
}

var (
	eventLogger EventLogger
	loggerMu    sync.RWMutex
)

// SetEventLogger sets the global event logger
func SetEventLogger(logger EventLogger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	eventLogger = logger
}

// LogEvent writes the event to InfoLog and forwards it to the event logger, if any.
func LogEvent(source string, message string) {
	InfoLog.Printf("[%s] %s", source, message)

	loggerMu.RLock()
	logger := eventLogger
	loggerMu.RUnlock()

	if logger != nil {
		logger.LogEvent(source, message)
	}
}
