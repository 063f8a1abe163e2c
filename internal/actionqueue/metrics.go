package actionqueue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricNamespace = "merganser"

const (
	queueOperationsMetricName = "queue_operations_total"
	actionCountMetricName     = "queue_actions_count"
	actionDurationMetricName  = "action_duration_seconds"
)

const (
	operationLabel = "operation"
	statusLabel    = "status"
	kindLabel      = "kind"
)

type operationLabelVal string

const (
	operationLabelEnqueueVal     operationLabelVal = "enqueue"
	operationLabelDeduplicateVal operationLabelVal = "deduplicate"
	operationLabelDequeueVal     operationLabelVal = "dequeue"
	operationLabelCompleteVal    operationLabelVal = "complete"
	operationLabelRetryVal       operationLabelVal = "retry"
	operationLabelFailVal        operationLabelVal = "fail"
	operationLabelCancelVal      operationLabelVal = "cancel"
	operationLabelPurgeVal       operationLabelVal = "purge"
)

type metricCollector struct {
	queueOps       *prometheus.CounterVec
	actionCount    *prometheus.GaugeVec
	actionDuration *prometheus.HistogramVec
}

var metrics = newMetricCollector()

func newMetricCollector() *metricCollector {
	return &metricCollector{
		queueOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      queueOperationsMetricName,
				Help:      "count of action queue operations",
			},
			[]string{operationLabel},
		),
		actionCount: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricNamespace,
				Name:      actionCountMetricName,
				Help:      "count of actions per queue partition",
			},
			[]string{statusLabel},
		),
		actionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricNamespace,
				Name:      actionDurationMetricName,
				Help:      "duration of action handler executions",
			},
			[]string{kindLabel},
		),
	}
}

func (m *metricCollector) OpsInc(operation operationLabelVal) {
	m.queueOps.WithLabelValues(string(operation)).Inc()
}

func (m *metricCollector) SetPartitionSize(partition string, size int) {
	m.actionCount.WithLabelValues(partition).Set(float64(size))
}

func (m *metricCollector) ObserveActionDuration(kind Kind, seconds float64) {
	m.actionDuration.WithLabelValues(string(kind)).Observe(seconds)
}
