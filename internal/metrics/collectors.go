// Package metrics exposes runtime counters to Prometheus.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	framesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "turtle_frames_total", Help: "frames ticked, by script engine"},
		[]string{"engine"},
	)

	scriptFaultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "turtle_script_faults_total", Help: "script faults that halted a game, by engine"},
		[]string{"engine"},
	)

	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "turtle_sessions_active", Help: "running game sessions"},
	)

	frameSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "turtle_frame_seconds",
			Help:    "time spent ticking one frame.",
			Buckets: []float64{0.001, 0.002, 0.005, 0.01, 0.016, 0.033, 0.05, 0.1},
		},
	)
)

func init() {
	prometheus.MustRegister(
		framesTotal,
		scriptFaultsTotal,
		sessionsActive,
		frameSeconds,
	)
}
