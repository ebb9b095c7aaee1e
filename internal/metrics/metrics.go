// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "airlines"

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Bookings successfully created.",
	})

	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_cancelled_total",
		Help:      "Bookings cancelled by their owner.",
	})

	BookingsRefused = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_refused_total",
		Help:      "Booking attempts refused, by reason.",
	}, []string{"reason"})

	FlightCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flight_cache_hits_total",
		Help:      "Flight searches served from cache.",
	})

	FlightCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flight_cache_misses_total",
		Help:      "Flight searches that went to the store.",
	})

	InventoryDrift = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_drift_total",
		Help:      "Ticket pools found out of line with active bookings.",
	}, []string{"class"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Refusal reasons.
const (
	ReasonNoSeats    = "no_seats"
	ReasonNotFound   = "flight_not_found"
	ReasonValidation = "validation"
	ReasonForbidden  = "forbidden"
)
