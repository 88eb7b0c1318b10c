package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "vtree"

type metrics struct {
	clients        prometheus.Gauge
	mutations      *prometheus.CounterVec
	framesSent     *prometheus.CounterVec
	clientEvents   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		clients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "server",
			Name:      "clients",
			Help:      "Number of connected websocket clients",
		}),
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "server",
			Name:      "mutations_total",
			Help:      "Tree mutations observed, by kind",
		}, []string{"kind"}),
		framesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "server",
			Name:      "frames_sent_total",
			Help:      "Frames queued to clients, by frame type",
		}, []string{"type"}),
		clientEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "server",
			Name:      "client_events_total",
			Help:      "Client events received, by result",
		}, []string{"result"}),
		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "server",
			Name:      "render_duration_seconds",
			Help:      "Time spent materializing HTML",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"target"}),
	}
}
