package service

import (
	"io"
	"log/slog"
)

// EventKind names the discrete progress events a run emits.
type EventKind string

const (
	EventBootstrapStarted  EventKind = "bootstrap_started"
	EventBootstrapDone     EventKind = "bootstrap_done"
	EventCoursesDiscovered EventKind = "courses_discovered"
	EventFetchProgress     EventKind = "fetch_progress"
	EventRunComplete       EventKind = "run_complete"
	EventRunFailed         EventKind = "run_failed"
)

// Event is one progress notification. The presentation layer is the only
// consumer; the core never renders.
type Event struct {
	Kind  EventKind
	RunID string

	// Count is set for CoursesDiscovered.
	Count int
	// Completed/Total are set for FetchProgress.
	Completed int
	Total     int
	// Records/Warnings are set for RunComplete.
	Records  int
	Warnings int
	// FailureKind is set for RunFailed.
	FailureKind string
}

// Observer receives run events. Implementations must tolerate calls from
// fetch worker goroutines.
type Observer interface {
	OnEvent(event Event)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnEvent(Event) {}

type multiObserver []Observer

func (m multiObserver) OnEvent(event Event) {
	for _, o := range m {
		o.OnEvent(event)
	}
}

// MultiObserver fans each event out to every given observer.
func MultiObserver(observers ...Observer) Observer {
	return multiObserver(observers)
}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes run events to the provided writer.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) OnEvent(event Event) {
	attrs := []any{"event", string(event.Kind), "run_id", event.RunID}
	switch event.Kind {
	case EventCoursesDiscovered:
		attrs = append(attrs, "count", event.Count)
	case EventFetchProgress:
		attrs = append(attrs, "completed", event.Completed, "total", event.Total)
	case EventRunComplete:
		attrs = append(attrs, "records", event.Records, "warnings", event.Warnings)
	case EventRunFailed:
		attrs = append(attrs, "failure_kind", event.FailureKind)
		o.logger.Error("tracker_run", attrs...)
		return
	}
	o.logger.Info("tracker_run", attrs...)
}
