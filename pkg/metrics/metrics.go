package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	reviewPlanner = "review_planner"

	// Workflow metrics
	transitionsTotal        = "workflow_transitions_total"
	transitionFailuresTotal = "workflow_transition_failures_total"

	// Notification metrics
	notificationsEnqueuedTotal = "notifications_enqueued_total"

	// Labels
	operationLabel  = "operation"
	fromStatusLabel = "from"
	toStatusLabel   = "to"
	reasonLabel     = "reason"
	typeLabel       = "type"
)

var transitionLabels = []string{
	operationLabel,
	fromStatusLabel,
	toStatusLabel,
}

var transitionFailureLabels = []string{
	operationLabel,
	reasonLabel,
}

var notificationLabels = []string{
	typeLabel,
}

/**
* Metrics definition
**/
var transitionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: reviewPlanner,
		Name:      transitionsTotal,
		Help:      "number of successful workflow transitions",
	},
	transitionLabels,
)

var transitionFailuresTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: reviewPlanner,
		Name:      transitionFailuresTotal,
		Help:      "number of rejected workflow transitions by failure reason",
	},
	transitionFailureLabels,
)

var notificationsEnqueuedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: reviewPlanner,
		Name:      notificationsEnqueuedTotal,
		Help:      "number of notifications handed to the dispatcher",
	},
	notificationLabels,
)

func IncreaseTransition(operation, from, to string) {
	labels := prometheus.Labels{
		operationLabel:  operation,
		fromStatusLabel: from,
		toStatusLabel:   to,
	}
	transitionsTotalMetric.With(labels).Inc()
}

func IncreaseTransitionFailure(operation, reason string) {
	labels := prometheus.Labels{
		operationLabel: operation,
		reasonLabel:    reason,
	}
	transitionFailuresTotalMetric.With(labels).Inc()
}

func IncreaseNotificationEnqueued(notificationType string) {
	labels := prometheus.Labels{
		typeLabel: notificationType,
	}
	notificationsEnqueuedTotalMetric.With(labels).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(transitionsTotalMetric)
	prometheus.MustRegister(transitionFailuresTotalMetric)
	prometheus.MustRegister(notificationsEnqueuedTotalMetric)
	prometheus.MustRegister(totalUniqueActorsPerWeekMetric)
}
