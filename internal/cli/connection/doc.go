// Package connection provides the respkv-cli client.
//
// A Client holds one TCP connection to a respkv server and sends each
// command as an array of bulk strings, reading back exactly one reply
// frame per request.
package connection
