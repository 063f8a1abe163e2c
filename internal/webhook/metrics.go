package webhook

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricNamespace = "merganser"

const (
	eventTypeLabel = "event_type"
	outcomeLabel   = "outcome"
)

const (
	outcomeRejected = "rejected"
	outcomeInvalid  = "invalid"
	outcomeEnqueued = "enqueued"
	outcomeIgnored  = "ignored"
)

var eventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "webhook_events_total",
		Help:      "count of received webhook deliveries per event type and outcome",
	},
	[]string{eventTypeLabel, outcomeLabel},
)
