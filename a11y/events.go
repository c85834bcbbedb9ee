package a11y

import (
	"log/slog"
	"time"

	"github.com/magpierre/gridaccess/datatable"
)

// EventType identifies an accessibility event.
type EventType string

const (
	EventNameChange      EventType = "name_change"
	EventStateChange     EventType = "state_change"
	EventShow            EventType = "show"
	EventHide            EventType = "hide"
	EventReorder         EventType = "reorder"
	EventSelectionAdd    EventType = "selection_add"
	EventSelectionRemove EventType = "selection_remove"
)

// Event is emitted by a Tree when an accessible changes.
type Event struct {
	Type      EventType         // Type of event
	BatchID   string            // Shared by every event caused by one host notification
	Timestamp time.Time         // When the event was emitted
	Target    Accessible        // Object the event is about
	Row       int               // Row index at emission time, -1 for table-level events
	Column    *datatable.Column // Column for cell events, nil otherwise
}

// Observer receives events from a Tree.
type Observer interface {
	OnEvent(event Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnEvent implements Observer.
func (f ObserverFunc) OnEvent(event Event) { f(event) }

// LoggingObserver logs every event using structured logging.
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer. A nil logger uses slog.Default().
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface.
func (lo *LoggingObserver) OnEvent(event Event) {
	attrs := []any{
		"event", event.Type,
		"batch_id", event.BatchID,
		"row", event.Row,
	}
	if event.Target != nil {
		attrs = append(attrs, "role", event.Target.Role())
	}
	if event.Column != nil {
		attrs = append(attrs, "column", event.Column.ID())
	}
	lo.logger.Debug("a11y_event", attrs...)
}
