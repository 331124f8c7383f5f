package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"paddock/internal/standings"
)

var (
	seasonsDesc = prometheus.NewDesc(
		"paddock_document_seasons",
		"Distinct seasons in the loaded standings document",
		nil,
		nil,
	)
	entriesDesc = prometheus.NewDesc(
		"paddock_document_entries",
		"Season/category entries in the loaded standings document",
		nil,
		nil,
	)
	loadedAtDesc = prometheus.NewDesc(
		"paddock_document_loaded_timestamp_seconds",
		"Unix time of the last successful document load",
		nil,
		nil,
	)

	fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddock_document_fetches_total",
			Help: "Document fetch attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// DocumentCollector is a custom Prometheus collector that reads the
// standings store on each scrape.
type DocumentCollector struct {
	store *standings.Store
}

// Describe sends the metric descriptors to the channel.
func (c *DocumentCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- seasonsDesc
	ch <- entriesDesc
	ch <- loadedAtDesc
}

// Collect reads the current snapshot and emits its gauges.
func (c *DocumentCollector) Collect(ch chan<- prometheus.Metric) {
	doc, loadedAt, _ := c.store.Snapshot()
	if doc == nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(seasonsDesc, prometheus.GaugeValue, float64(len(doc.Seasons())))
	ch <- prometheus.MustNewConstMetric(entriesDesc, prometheus.GaugeValue, float64(doc.Len()))
	ch <- prometheus.MustNewConstMetric(loadedAtDesc, prometheus.GaugeValue, float64(loadedAt.Unix()))
}

var initOnce sync.Once

// Init registers the collectors. Must be called once at startup.
func Init(store *standings.Store) {
	initOnce.Do(func() {
		prometheus.MustRegister(&DocumentCollector{store: store})
		prometheus.MustRegister(fetchesTotal)
	})
}

// RecordFetch counts a document fetch attempt. Outcome is "ok" or
// "error".
func RecordFetch(outcome string) {
	fetchesTotal.WithLabelValues(outcome).Inc()
}
