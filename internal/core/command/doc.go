// Package command turns request frames into typed commands and executes
// them against a store.
//
// A request is a non-null Array whose first element is the verb and whose
// remaining elements are operands. Parsing walks the array with a Parser,
// a forward-only cursor that checks element types and exact arity. The
// result is one of a closed set of Command types:
//
//   - GET, SET, ECHO
//   - HGET, HSET, HGETALL, HMGET
//   - SADD, SMEMBERS, SISMEMBER
//
// Execution never fails: absent keys yield Null (or an empty Array for
// SMEMBERS). Parse errors are reported with ErrorReply, which maps them to
// the SimpleError sent back to the client.
package command
