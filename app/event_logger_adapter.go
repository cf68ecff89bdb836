package app

import (
	"json-modal/ui"
)

// EventLoggerAdapter adapts the LogPane to the EventLogger interface
type EventLoggerAdapter struct {
	logPane *ui.LogPane
}

// NewEventLoggerAdapter creates a new event logger adapter
func NewEventLoggerAdapter(logPane *ui.LogPane) *EventLoggerAdapter {
	return &EventLoggerAdapter{
		logPane: logPane,
	}
}

// LogEvent implements the EventLogger interface
func (a *EventLoggerAdapter) LogEvent(source string, message string) {
	if a.logPane != nil {
		a.logPane.AddLog(source, message)
	}
}
