package session

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CreatedTotal counts pages created for new or expired sessions.
	CreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "session_pages_created_total",
			Help: "Total number of pages created.",
		},
	)

	// EvictionsTotal counts pages dropped by size or TTL.
	EvictionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "session_pages_evicted_total",
			Help: "Total number of pages evicted from the session store.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		CreatedTotal,
		EvictionsTotal,
	)
}

// pagesCollector lazily reports the number of live pages by calling lenFunc at scrape time.
type pagesCollector struct {
	desc    *prometheus.Desc
	lenFunc func() int
}

func (c *pagesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *pagesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.lenFunc()))
}

var (
	collectorMu sync.Mutex
	collector   *pagesCollector
	// pagesReg is exposed as a variable so tests can substitute an isolated registry.
	pagesReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerPagesCollector registers the live-pages gauge, replacing the collector of a
// previously created store.
func registerPagesCollector(lenFunc func() int) *pagesCollector {
	c := &pagesCollector{
		desc:    prometheus.NewDesc("session_pages", "Current number of live pages.", nil, nil),
		lenFunc: lenFunc,
	}

	collectorMu.Lock()
	defer collectorMu.Unlock()

	if collector != nil {
		pagesReg.Unregister(collector)
	}
	collector = c
	_ = pagesReg.Register(c)
	return c
}
