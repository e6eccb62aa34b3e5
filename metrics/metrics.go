// Package metrics defines the Prometheus instruments of the search index.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ConsultasTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "busqueda",
			Name:      "consultas_total",
			Help:      "Total number of search queries",
		},
		[]string{"tipo", "resultado"},
	)

	ConsultaDuracion = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "busqueda",
			Name:      "consulta_duration_seconds",
			Help:      "Search query duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"tipo"},
	)

	CantidadResultados = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "busqueda",
			Name:      "cantidad_resultados",
			Help:      "Result counts per search query",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	IndexacionEventosTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "busqueda",
			Name:      "indexacion_eventos_total",
			Help:      "Ingestion events by kind and outcome",
		},
		[]string{"tipo", "resultado"}, // resultado: ok | diferido | error
	)

	SyncSweepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "busqueda",
			Name:      "sync_sweeps_total",
			Help:      "Reconciliation sweeps by outcome",
		},
		[]string{"resultado"},
	)
)

var registered bool

// Register registers all instruments. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(ConsultasTotal)
	prometheus.MustRegister(ConsultaDuracion)
	prometheus.MustRegister(CantidadResultados)
	prometheus.MustRegister(IndexacionEventosTotal)
	prometheus.MustRegister(SyncSweepsTotal)
	registered = true
}
