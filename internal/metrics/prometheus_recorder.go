package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docnav"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	renderDuration *prom.HistogramVec
	renderResults  *prom.CounterVec
	runDuration    prom.Histogram
	navItems       *prom.GaugeVec
	missingLinks   prom.Gauge
	watchReloads   prom.Counter
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of rendering and writing one target",
			Buckets:   prom.DefBuckets,
		}, []string{"target"}),
		renderResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "render_results_total",
			Help:      "Target render results by outcome",
		}, []string{"target", "result"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total generation run duration",
			Buckets:   prom.DefBuckets,
		}),
		navItems: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "nav_items",
			Help:      "Items in the last generated navigation tree by kind",
		}, []string{"kind"}),
		missingLinks: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "missing_links",
			Help:      "Nav links without a page in the last link check",
		}),
		watchReloads: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "watch_reloads_total",
			Help:      "Regenerations triggered by file changes",
		}),
	}
	reg.MustRegister(pr.renderDuration, pr.renderResults, pr.runDuration, pr.navItems, pr.missingLinks, pr.watchReloads)
	return pr
}

func (p *PrometheusRecorder) ObserveRenderDuration(target string, d time.Duration) {
	if p == nil {
		return
	}
	p.renderDuration.WithLabelValues(target).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRenderResult(target string, result ResultLabel) {
	if p == nil {
		return
	}
	p.renderResults.WithLabelValues(target, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetNavItems(links, groups int) {
	if p == nil {
		return
	}
	p.navItems.WithLabelValues("link").Set(float64(links))
	p.navItems.WithLabelValues("group").Set(float64(groups))
}

func (p *PrometheusRecorder) SetMissingLinks(n int) {
	if p == nil {
		return
	}
	p.missingLinks.Set(float64(n))
}

func (p *PrometheusRecorder) IncWatchReload() {
	if p == nil {
		return
	}
	p.watchReloads.Inc()
}
