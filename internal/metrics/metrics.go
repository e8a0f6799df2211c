package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	RentalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentals_total",
		Help: "Successfully created rentals",
	})

	ReturnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_returns_total",
		Help: "Successfully returned rentals",
	})

	RentalConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_conflicts_total",
		Help: "Rent attempts rejected because no copy was available",
	})
)
