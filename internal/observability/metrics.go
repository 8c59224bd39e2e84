// Package observability holds Prometheus metrics and OpenTelemetry tracing
// for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts successful account registrations by role.
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cohort_registrations_total",
		Help: "Total number of successful registrations by role",
	}, []string{"role"})

	// SurveysCreatedTotal counts surveys created through the API.
	SurveysCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cohort_surveys_created_total",
		Help: "Total number of surveys created",
	})

	// AuthFailuresTotal counts failed token requests by reason.
	AuthFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cohort_auth_failures_total",
		Help: "Total number of failed authentication attempts by reason",
	}, []string{"reason"})

	// CacheErrorRate counts Redis errors by operation type.
	CacheErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cohort_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
