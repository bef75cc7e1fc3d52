package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry dùng riêng thay vì DefaultRegisterer để test có thể tạo nhiều instance.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	Mutations    *prometheus.CounterVec
	Uploads      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bloghub",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bloghub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bloghub",
			Name:      "blog_mutations_total",
			Help:      "Blog mutations (create, update, delete, like, comment) by outcome.",
		}, []string{"kind", "status"}),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bloghub",
			Name:      "uploads_total",
			Help:      "Editor uploads by outcome.",
		}, []string{"status"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.Mutations,
		m.Uploads,
	)
	return m
}

func (m *Metrics) ObserveMutation(kind string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.Mutations.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) ObserveUpload(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.Uploads.WithLabelValues(status).Inc()
}
