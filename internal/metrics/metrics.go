// Package metrics exports queue lifecycle events as prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hay-kot/toastq/internal/core/queue"
)

const namespace = "toastq"

// Collector implements queue.Observer by counting lifecycle events.
type Collector struct {
	published *prometheus.CounterVec
	evicted   prometheus.Counter
	hidden    prometheus.Counter
	removed   prometheus.Counter
	clears    prometheus.Counter
	cleared   prometheus.Counter
	lifetime  prometheus.Histogram

	reg prometheus.Registerer
	now func() time.Time
}

var _ queue.Observer = (*Collector)(nil)

// NewCollector creates a collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "Messages published, by style.",
		}, []string{"style"}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_evicted_total",
			Help:      "Messages evicted by the visible window.",
		}),
		hidden: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_hidden_total",
			Help:      "Messages whose exit transition was requested.",
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_removed_total",
			Help:      "Messages removed after their exit transition completed.",
		}),
		clears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_clears_total",
			Help:      "Calls to clear the queue.",
		}),
		cleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_cleared_total",
			Help:      "Messages dropped by clearing the queue.",
		}),
		lifetime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_lifetime_seconds",
			Help:      "Time from publish to structural removal.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 300, 900},
		}),
		reg: reg,
		now: time.Now,
	}

	reg.MustRegister(c.published, c.evicted, c.hidden, c.removed, c.clears, c.cleared, c.lifetime)
	return c
}

// WatchSize registers a gauge reporting the logical queue size.
func (c *Collector) WatchSize(size func() int) {
	c.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_size",
		Help:      "Messages in the logical queue.",
	}, func() float64 { return float64(size()) }))
}

func (c *Collector) Published(m *queue.Message) {
	c.published.WithLabelValues(string(m.Style())).Inc()
}

func (c *Collector) Evicted(*queue.Message) { c.evicted.Inc() }

func (c *Collector) Hidden(*queue.Message) { c.hidden.Inc() }

func (c *Collector) Removed(m *queue.Message) {
	c.removed.Inc()
	c.lifetime.Observe(c.now().Sub(m.CreatedAt()).Seconds())
}

func (c *Collector) Cleared(n int) {
	c.clears.Inc()
	c.cleared.Add(float64(n))
}
