package logging

import (
	"context"
	"encoding/json"
)

// Severity of a business event. Maps one-to-one onto the underlying log
// level.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// EventLogger writes one line per business event, each tagged with the
// service name and the request's correlation id so lines from a single
// request can be grepped together.
type EventLogger struct {
	log Logger
}

func NewEventLogger(log Logger) *EventLogger {
	return &EventLogger{log: log.With("service", "ui")}
}

// Event emits a single line for the named event. params carries the
// request parameters relevant to the event and is serialized as JSON.
func (e *EventLogger) Event(ctx context.Context, sev Severity, event, requestID, message string, params map[string]string) {
	if params == nil {
		params = map[string]string{}
	}
	encoded, err := json.Marshal(params)
	if err != nil {
		encoded = []byte("{}")
	}
	args := []any{"event", event, "request_id", requestID, "params", string(encoded)}
	switch sev {
	case SeverityError:
		e.log.Error(ctx, message, args...)
	case SeverityWarning:
		e.log.Warn(ctx, message, args...)
	default:
		e.log.Info(ctx, message, args...)
	}
}
