package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Assignment outcomes used as the "outcome" label.
const (
	OutcomeSuccess          = "success"
	OutcomeNoSelection      = "no_selection"
	OutcomeCapacityExceeded = "capacity_exceeded"
	OutcomeInvalidInput     = "invalid_input"
	OutcomeStoreFailure     = "store_failure"
)

var (
	AssignmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffing_assignments_total",
			Help: "Total number of assignment attempts by outcome",
		},
		[]string{"outcome"},
	)

	NursesAssigned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "staffing_nurses_assigned_total",
			Help: "Total number of nurses placed on staffing requests",
		},
	)

	AssignmentConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "staffing_assignment_conflicts_total",
			Help: "Conditional updates rejected because the request changed after it was read",
		},
	)

	AssignmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "staffing_assignment_duration_seconds",
			Help:    "Duration of assignment operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RequestsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffing_requests_submitted_total",
			Help: "Hospital staffing request submissions by result",
		},
		[]string{"result"},
	)

	ActiveNurses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "staffing_active_nurses",
			Help: "Active nurses at the last maintenance sample",
		},
	)

	PendingRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "staffing_pending_requests",
			Help: "Pending staffing requests at the last maintenance sample",
		},
	)

	FillRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "staffing_fill_rate_percent",
			Help: "Aggregate fill rate at the last maintenance sample",
		},
	)
)
