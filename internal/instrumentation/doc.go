// Package instrumentation provides OpenTelemetry metrics for the order
// intake pipeline.
//
// The package exposes counters for fetched emails, identification results
// and sales order postings, plus duration histograms for pipeline
// operations and agent tool invocations. Metrics are exported to stdout
// via a periodic reader and are disabled by default; the no-op recorder
// makes recording safe when disabled.
package instrumentation
