package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestOrNoop(t *testing.T) {
	require.IsType(t, NoopRecorder{}, OrNoop(nil))

	pr := NewPrometheusRecorder(nil)
	require.Same(t, pr, OrNoop(pr))
}

func TestNoopRecorder_AcceptsEverything(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObservePageDuration(time.Second)
	r.IncPageResult(ResultSuccess)
	r.IncDirectiveResolved("include")
	r.IncWarning()
	r.IncURLFetch(true)
	r.ObserveRebuildDuration(time.Second)
	r.IncRebuildOutcome("success")
}

func TestPrometheusRecorder_Counters(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncPageResult(ResultSuccess)
	pr.IncPageResult(ResultSuccess)
	pr.IncPageResult(ResultFatal)
	pr.IncDirectiveResolved("include")
	pr.IncWarning()
	pr.IncURLFetch(true)
	pr.IncURLFetch(false)
	pr.IncRebuildOutcome("failed")

	require.Equal(t, 2.0,
		testutil.ToFloat64(pr.pageResults.WithLabelValues(string(ResultSuccess))))
	require.Equal(t, 1.0,
		testutil.ToFloat64(pr.pageResults.WithLabelValues(string(ResultFatal))))
	require.Equal(t, 1.0,
		testutil.ToFloat64(pr.directives.WithLabelValues("include")))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.warnings))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.urlFetches.WithLabelValues("hit")))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.urlFetches.WithLabelValues("miss")))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.rebuildOutcome.WithLabelValues("failed")))
}

func TestPrometheusRecorder_Histograms(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObservePageDuration(50 * time.Millisecond)
	pr.ObserveRebuildDuration(time.Second)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["mdinclude_page_duration_seconds"])
	require.True(t, names["mdinclude_rebuild_duration_seconds"])
}

func TestPrometheusRecorder_NilReceiverIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObservePageDuration(time.Second)
	pr.IncPageResult(ResultSuccess)
	pr.IncDirectiveResolved("include")
	pr.IncWarning()
	pr.IncURLFetch(false)
	pr.ObserveRebuildDuration(time.Second)
	pr.IncRebuildOutcome("success")
}
