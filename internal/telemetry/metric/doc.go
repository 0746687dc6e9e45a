// Package metric provides Prometheus metrics for respkv.
//
//   - prometheus.go: the registry, command and connection metrics, and
//     the /metrics HTTP handler
//   - collector.go: a collector reporting key counts from the store
//
// Every Registry owns its own prometheus.Registry, so tests and multiple
// servers in one process do not collide on registration.
package metric
