// Package redisserver serves the respkv command set over TCP using the
// RESP wire protocol.
//
// Each accepted connection gets its own goroutine that reads one frame,
// parses and executes it against the shared store, writes the reply and
// only then reads the next frame. Malformed input closes the connection
// after a best-effort error reply; a request that is well-formed but not
// a valid command gets an error reply and the connection stays open.
package redisserver
