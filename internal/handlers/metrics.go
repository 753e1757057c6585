package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// generationCount tracks completed orchestration calls by kind. The gin
// middleware covers request-level metrics; this separates the expensive
// model-backed operations from plain traffic.
var generationCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "careplan_operations_total",
	Help: "Completed plan operations by kind and outcome.",
}, []string{"kind", "outcome"})

func countOperation(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	generationCount.WithLabelValues(kind, outcome).Inc()
}
