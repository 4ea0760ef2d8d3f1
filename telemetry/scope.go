package telemetry

import (
	"sync"

	"github.com/rs/zerolog"
)

// Recorder receives the finalized diagnostic record of an exchange.
type Recorder interface {
	Record(event *HTTPEvent)
}

// Scope ties an HTTPEvent to a guaranteed finalization point. Close
// dispatches the event to the recorder exactly once; later calls are no-ops.
type Scope struct {
	recorder Recorder
	event    *HTTPEvent
	once     sync.Once
}

// OpenScope opens the telemetry scope for one exchange. The caller defers
// Close so the event is finalized on every exit path.
func OpenScope(recorder Recorder, event *HTTPEvent) *Scope {
	return &Scope{recorder: recorder, event: event}
}

// Close finalizes the scope. Safe to call more than once and with a nil
// recorder.
func (s *Scope) Close() {
	s.once.Do(func() {
		if s.recorder != nil {
			s.recorder.Record(s.event)
		}
	})
}

// LogRecorder writes finalized events to a structured logger. It is the
// default recorder when no other sink is configured.
type LogRecorder struct {
	Logger zerolog.Logger
}

// Record logs the finalized diagnostic record.
func (r LogRecorder) Record(event *HTTPEvent) {
	entry := r.Logger.Debug().
		Str("method", event.Method).
		Str("path", event.Path).
		Int("status", event.ResponseStatus)

	if event.QueryParams != "" {
		entry = entry.Str("query", event.QueryParams)
	}
	if event.RequestIDHeader != "" {
		entry = entry.Str("request_id", event.RequestIDHeader)
	}
	if event.OAuthErrorCode != "" {
		entry = entry.Str("oauth_error_code", event.OAuthErrorCode)
	}
	if event.ClientTelemetry != nil {
		entry = entry.
			Str("server_error_code", event.ClientTelemetry.ServerErrorCode).
			Str("server_sub_error_code", event.ClientTelemetry.ServerSubErrorCode)
	}
	entry.Msg("token exchange completed")
}
