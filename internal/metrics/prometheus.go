package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "xmlp"

type Prometheus struct {
	Messages      *prometheus.CounterVec
	Train         *prometheus.CounterVec
	TrainDuration *prometheus.HistogramVec
	Map           *prometheus.CounterVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_total",
				Help:      "messages handled by the learner objects",
			}, []string{"selector", "result"}),
		Train: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "train_total",
				Help:      "training runs",
			}, []string{"mode", "result"}),
		TrainDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "train_duration_seconds",
				Help:      "duration of the training runs",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			}, []string{"mode"}),
		Map: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "map_total",
				Help:      "inputs mapped through a trained model",
			}, []string{"mode", "result"}),
	}
}
