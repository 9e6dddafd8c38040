// Package promsingleton exports singleton registry statistics to
// Prometheus.
package promsingleton

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/junioryono/singleton"
)

const subsystem = "singleton"

var _ prometheus.Collector = (*Collector)(nil)

// Collector reads Registry.Stats on every scrape.
type Collector struct {
	registry *singleton.Registry

	handles       *prometheus.Desc
	injectables   *prometheus.Desc
	disposables   *prometheus.Desc
	hits          *prometheus.Desc
	constructions *prometheus.Desc
	failures      *prometheus.Desc
	discarded     *prometheus.Desc
	injections    *prometheus.Desc
	rejected      *prometheus.Desc
	clears        *prometheus.Desc
}

// NewCollector creates a collector for r. Metric names are prefixed with
// namespace when it is not empty, and every metric carries the registry
// name as a constant label.
func NewCollector(r *singleton.Registry, namespace string) *Collector {
	labels := prometheus.Labels{"registry": r.Name()}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, name), help, nil, labels)
	}

	return &Collector{
		registry:      r,
		handles:       desc("handles", "Number of declared singleton handles."),
		injectables:   desc("injectable_handles", "Number of declared injectable handles."),
		disposables:   desc("disposables", "Number of materialized values closed on registry close."),
		hits:          desc("hits_total", "Lookups served from a committed value."),
		constructions: desc("constructions_total", "Successful runs of a creation strategy."),
		failures:      desc("construction_failures_total", "Creation strategies that returned an error."),
		discarded:     desc("discarded_total", "Constructions that lost a race and were dropped."),
		injections:    desc("injections_total", "Factories injected."),
		rejected:      desc("rejected_injections_total", "Injections rejected because a factory was already set."),
		clears:        desc("clears_total", "Registry clears."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.handles
	ch <- c.injectables
	ch <- c.disposables
	ch <- c.hits
	ch <- c.constructions
	ch <- c.failures
	ch <- c.discarded
	ch <- c.injections
	ch <- c.rejected
	ch <- c.clears
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.registry.Stats()

	ch <- prometheus.MustNewConstMetric(c.handles, prometheus.GaugeValue, float64(s.Handles))
	ch <- prometheus.MustNewConstMetric(c.injectables, prometheus.GaugeValue, float64(s.Injectables))
	ch <- prometheus.MustNewConstMetric(c.disposables, prometheus.GaugeValue, float64(s.Disposables))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.constructions, prometheus.CounterValue, float64(s.Constructions))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(s.Failures))
	ch <- prometheus.MustNewConstMetric(c.discarded, prometheus.CounterValue, float64(s.Discarded))
	ch <- prometheus.MustNewConstMetric(c.injections, prometheus.CounterValue, float64(s.Injections))
	ch <- prometheus.MustNewConstMetric(c.rejected, prometheus.CounterValue, float64(s.RejectedInjections))
	ch <- prometheus.MustNewConstMetric(c.clears, prometheus.CounterValue, float64(s.Clears))
}
