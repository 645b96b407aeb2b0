package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	pageDuration    prom.Histogram
	pageResults     *prom.CounterVec
	directives      *prom.CounterVec
	warnings        prom.Counter
	urlFetches      *prom.CounterVec
	rebuildDuration prom.Histogram
	rebuildOutcome  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		pageDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "mdinclude",
			Name:      "page_duration_seconds",
			Help:      "Duration of individual page processing",
			Buckets:   prom.DefBuckets,
		}),
		pageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdinclude",
			Name:      "page_results_total",
			Help:      "Page processing results by outcome",
		}, []string{"result"}),
		directives: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdinclude",
			Name:      "directives_resolved_total",
			Help:      "Resolved include directives by kind",
		}, []string{"kind"}),
		warnings: prom.NewCounter(prom.CounterOpts{
			Namespace: "mdinclude",
			Name:      "warnings_total",
			Help:      "Non-fatal directive warnings emitted",
		}),
		urlFetches: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdinclude",
			Name:      "url_fetches_total",
			Help:      "Remote include fetches by cache outcome",
		}, []string{"cache"}),
		rebuildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "mdinclude",
			Name:      "rebuild_duration_seconds",
			Help:      "Total rebuild duration in watch mode",
			Buckets:   prom.DefBuckets,
		}),
		rebuildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdinclude",
			Name:      "rebuild_outcomes_total",
			Help:      "Rebuild outcomes by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		pr.pageDuration, pr.pageResults, pr.directives, pr.warnings,
		pr.urlFetches, pr.rebuildDuration, pr.rebuildOutcome,
	)
	return pr
}

func (p *PrometheusRecorder) ObservePageDuration(d time.Duration) {
	if p == nil || p.pageDuration == nil {
		return
	}
	p.pageDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPageResult(result ResultLabel) {
	if p == nil || p.pageResults == nil {
		return
	}
	p.pageResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncDirectiveResolved(kind string) {
	if p == nil || p.directives == nil {
		return
	}
	p.directives.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncWarning() {
	if p == nil || p.warnings == nil {
		return
	}
	p.warnings.Inc()
}

func (p *PrometheusRecorder) IncURLFetch(cacheHit bool) {
	if p == nil || p.urlFetches == nil {
		return
	}
	label := "miss"
	if cacheHit {
		label = "hit"
	}
	p.urlFetches.WithLabelValues(label).Inc()
}

func (p *PrometheusRecorder) ObserveRebuildDuration(d time.Duration) {
	if p == nil || p.rebuildDuration == nil {
		return
	}
	p.rebuildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRebuildOutcome(outcome string) {
	if p == nil || p.rebuildOutcome == nil {
		return
	}
	p.rebuildOutcome.WithLabelValues(outcome).Inc()
}
