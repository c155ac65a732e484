// Package metrics provides build metrics for doctags.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder registers collectors on a
// prometheus registry which the CLI can dump to a textfile after a build:
//
//	reg := prom.NewRegistry()
//	builder := build.NewBuilder(settings, build.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//	...
//	metrics.WriteTextfile(reg, "doctags.prom")
package metrics
