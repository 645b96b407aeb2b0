// Package metrics provides observability hooks for page processing.
//
// It follows the Null Object pattern: components receive a Recorder through
// dependency injection and default to NoopRecorder, so metrics collection
// never requires nil checks at call sites. NewPrometheusRecorder swaps in a
// real implementation when the preview server exposes /metrics.
package metrics
