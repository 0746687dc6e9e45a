// Package shutdown coordinates graceful process termination.
//
// Components register named hooks with OnShutdown. Wait blocks until
// SIGINT or SIGTERM arrives, the context is cancelled or Trigger is
// called, then runs the hooks in reverse registration order under a
// shared timeout.
package shutdown
