// Package metrics holds the Prometheus collectors recorded by window
// streams. Every collector is labelled by the block name.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace  = "segal"
	LabelBlock = "block"
)

var (
	// WorkCount is the number of Work calls made on a block.
	WorkCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "work_total",
		Help:      "Total number of Work calls",
	}, []string{LabelBlock})

	// WindowsCount is the number of windows emitted by a block.
	WindowsCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "windows_total",
		Help:      "Total number of windows emitted",
	}, []string{LabelBlock})

	// ConsumedSamplesCount is the number of input samples a block reported consumed.
	ConsumedSamplesCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "consumed_samples_total",
		Help:      "Total number of input samples consumed",
	}, []string{LabelBlock})

	// ProducedSamplesCount is the number of output samples a block produced.
	ProducedSamplesCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "produced_samples_total",
		Help:      "Total number of output samples produced",
	}, []string{LabelBlock})

	// RetainedSamples is the number of input samples the host still holds
	// for a block after its last Work call.
	RetainedSamples = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "retained_samples",
		Help:      "Input samples offered but not yet consumed",
	}, []string{LabelBlock})
)

// ObserveWork records one Work call.
func ObserveWork(block string, consumed, produced, windowSize, retained int) {
	WorkCount.WithLabelValues(block).Inc()
	ConsumedSamplesCount.WithLabelValues(block).Add(float64(consumed))
	ProducedSamplesCount.WithLabelValues(block).Add(float64(produced))
	if windowSize > 0 {
		WindowsCount.WithLabelValues(block).Add(float64(produced / windowSize))
	}
	RetainedSamples.WithLabelValues(block).Set(float64(retained))
}
