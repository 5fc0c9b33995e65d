/*
Package observability records what the recipe browser does at runtime.

It turns the domain lifecycle hooks into structured log lines and Prometheus
metrics: recipe fetches by outcome and failure kind, fetch latency, and step
moves by direction. The HTTP API serves the registry at /metrics.
*/
package observability
