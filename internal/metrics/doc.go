// Package metrics records conversion and stage metrics.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// nil-check. PrometheusRecorder collects into a registry that the CLI can dump
// in node-exporter textfile format after a conversion.
package metrics
