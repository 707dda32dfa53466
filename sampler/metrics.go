package sampler

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors updated by a Sampler.
type Metrics struct {
	attempts   prometheus.Counter
	accepts    prometheus.Counter
	duplicates prometheus.Counter
	corpusSize prometheus.Gauge
	streak     prometheus.Gauge
}

// NewMetrics creates the sampler collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gpsrgen",
			Subsystem: "sampler",
			Name:      "attempts_total",
			Help:      "Generator invocations made by the sampler.",
		}),
		accepts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gpsrgen",
			Subsystem: "sampler",
			Name:      "accepted_total",
			Help:      "Generated commands that were new to the corpus.",
		}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gpsrgen",
			Subsystem: "sampler",
			Name:      "duplicates_total",
			Help:      "Generated commands already present in the corpus.",
		}),
		corpusSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gpsrgen",
			Name:      "corpus_size",
			Help:      "Unique commands in the corpus.",
		}),
		streak: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gpsrgen",
			Subsystem: "sampler",
			Name:      "longest_duplicate_streak",
			Help:      "Longest run of consecutive duplicate draws.",
		}),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.accepts, m.duplicates, m.corpusSize, m.streak} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register sampler metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) accepted(size int) {
	if m == nil {
		return
	}
	m.attempts.Inc()
	m.accepts.Inc()
	m.corpusSize.Set(float64(size))
}

func (m *Metrics) duplicate(longest int) {
	if m == nil {
		return
	}
	m.attempts.Inc()
	m.duplicates.Inc()
	m.streak.Set(float64(longest))
}

// WriteTextfile writes every metric gathered by g to path in the Prometheus
// text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
