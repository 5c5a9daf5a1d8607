// Package metrics defines the Prometheus collectors exposed by the API
// server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SimulationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chromsim_simulation_duration_seconds",
			Help:    "Simulation run duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"mode"},
	)

	SimulationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chromsim_simulation_total",
			Help: "Total number of simulation runs",
		},
		[]string{"mode", "status"},
	)

	PeaksPerRun = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chromsim_peaks_per_run",
			Help:    "Number of peaks modeled per simulation run",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		},
	)

	OptimizerIterations = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chromsim_optimizer_iterations",
			Help:    "Bisection iterations per heating-rate optimization",
			Buckets: []float64{1, 5, 10, 20, 40, 60},
		},
	)
)

// Init registers all collectors with the default registry.
func Init() {
	prometheus.MustRegister(SimulationDuration)
	prometheus.MustRegister(SimulationTotal)
	prometheus.MustRegister(PeaksPerRun)
	prometheus.MustRegister(OptimizerIterations)
}

// Handler returns the scrape endpoint for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
