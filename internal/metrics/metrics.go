package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds every Prometheus collector the runner updates. It
// mirrors internal/stream.Counters one-for-one, but as a separate
// concern: Counters is what the runner's own logic reads, Metrics is
// what it exports for scraping.
type Metrics struct {
	RecvMessages prometheus.Counter
	RecvBytes    prometheus.Counter
	SendMessages prometheus.Counter
	SendBytes    prometheus.Counter
	FiltMessages prometheus.Counter
	FiltBytes    prometheus.Counter

	FiltReasons *prometheus.CounterVec
}

// New constructs Metrics and registers every collector with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RecvMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ppm", Name: "recv_messages_total", Help: "Messages read from the consumed topic.",
		}),
		RecvBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ppm", Name: "recv_bytes_total", Help: "Bytes read from the consumed topic.",
		}),
		SendMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ppm", Name: "send_messages_total", Help: "Messages published to the produced topic.",
		}),
		SendBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ppm", Name: "send_bytes_total", Help: "Bytes published to the produced topic.",
		}),
		FiltMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ppm", Name: "filtered_messages_total", Help: "Messages suppressed by the filter policy.",
		}),
		FiltBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ppm", Name: "filtered_bytes_total", Help: "Bytes suppressed by the filter policy.",
		}),
		FiltReasons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ppm", Name: "filtered_reason_total", Help: "Suppressed messages broken out by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		m.RecvMessages, m.RecvBytes,
		m.SendMessages, m.SendBytes,
		m.FiltMessages, m.FiltBytes,
		m.FiltReasons,
	)
	return m
}

// NoOp returns a Metrics backed by a private registry, for callers (like
// tests) that don't need to scrape anything but still want a non-nil
// sink to pass to the runner.
func NoOp() *Metrics {
	return New(prometheus.NewRegistry())
}
