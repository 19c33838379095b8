package portal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// appMetrics holds the collectors of one App. Each App gets its own
// registry so several instances can coexist in one process.
type appMetrics struct {
	registry *prometheus.Registry
	reloads  *prometheus.CounterVec
	posts    *prometheus.GaugeVec
}

func newAppMetrics() *appMetrics {
	m := &appMetrics{
		registry: prometheus.NewRegistry(),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "content_reloads_total",
			Help:      "Content directory reloads by outcome.",
		}, []string{"result"}),
		posts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "portal",
			Name:      "posts",
			Help:      "Posts currently loaded, by state.",
		}, []string{"state"}),
	}
	m.registry.MustRegister(
		m.reloads,
		m.posts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
