// Package metrics exposes the prometheus instrumentation of the learner objects.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	Success = "success"
	Failure = "failure"
)

var Observer = &Metrics{
	mutex:      new(sync.RWMutex),
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(
		Observer.prometheus.Messages,
		Observer.prometheus.Train,
		Observer.prometheus.TrainDuration,
		Observer.prometheus.Map,
	)
}

type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
}

// Result returns the result label for the error.
func Result(err error) string {
	if err != nil {
		return Failure
	}
	return Success
}

// Message counts a handled message.
func (m *Metrics) Message(selector string, err error) {
	m.prometheus.Messages.WithLabelValues(selector, Result(err)).Inc()
}

// Train counts a training run and records its duration.
func (m *Metrics) Train(mode string, duration time.Duration, err error) {
	m.prometheus.Train.WithLabelValues(mode, Result(err)).Inc()
	m.prometheus.TrainDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// Map counts a mapped input.
func (m *Metrics) Map(mode string, err error) {
	m.prometheus.Map.WithLabelValues(mode, Result(err)).Inc()
}
