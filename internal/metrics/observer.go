package metrics

import "time"

// Observer records frame and fault metrics for one session.
type Observer struct {
	engine string
}

// NewObserver returns an observer labelling metrics with engine.
func NewObserver(engine string) *Observer {
	return &Observer{engine: engine}
}

// ObserveFrame counts a frame and its duration.
func (o *Observer) ObserveFrame(d time.Duration) {
	framesTotal.WithLabelValues(o.engine).Inc()
	frameSeconds.Observe(d.Seconds())
}

// ObserveFault counts a halting fault.
func (o *Observer) ObserveFault() {
	scriptFaultsTotal.WithLabelValues(o.engine).Inc()
}

// SessionStarted increments the active session gauge.
func (o *Observer) SessionStarted() {
	sessionsActive.Inc()
}

// SessionEnded decrements the active session gauge.
func (o *Observer) SessionEnded() {
	sessionsActive.Dec()
}
