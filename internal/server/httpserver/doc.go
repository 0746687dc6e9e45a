// Package httpserver provides the admin HTTP server of respkv-server.
//
// Routes:
//
//   - GET /healthz: liveness and a summary of the store as JSON
//   - GET /metrics: Prometheus metrics
//
// Requests pass through RequestID, Recover and AccessLog middleware.
package httpserver
