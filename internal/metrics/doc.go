// Package metrics provides the observability hooks for docnav generation.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection needs no nil checks at call sites:
//
//	svc := generate.NewService(cfg)                  // NoopRecorder
//	svc.WithRecorder(metrics.NewPrometheusRecorder(reg)) // when serving /metrics
//
// The Prometheus implementation registers its collectors on the registry it
// is given; HTTPHandler exposes that registry for scraping.
package metrics
