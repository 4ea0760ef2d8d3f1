package telemetryfakes

import (
	"sync"

	"github.com/jrsteele09/go-identity-client/telemetry"
)

var _ telemetry.Recorder = (*FakeRecorder)(nil)

// FakeRecorder counts finalizations and keeps every recorded event, for
// asserting the exactly-once scope contract in tests.
type FakeRecorder struct {
	events []*telemetry.HTTPEvent
	lock   sync.Mutex
}

func NewFakeRecorder() *FakeRecorder {
	return &FakeRecorder{}
}

func (r *FakeRecorder) Record(event *telemetry.HTTPEvent) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.events = append(r.events, event)
}

// RecordCount returns how many times Record was invoked.
func (r *FakeRecorder) RecordCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.events)
}

// LastEvent returns the most recently finalized event, or nil.
func (r *FakeRecorder) LastEvent() *telemetry.HTTPEvent {
	r.lock.Lock()
	defer r.lock.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}
