// Package main provides the entry point for respkv-cli.
//
// Usage:
//
//	respkv-cli                          interactive mode
//	respkv-cli exec SET greeting hello  send one command
//	respkv-cli -o json exec HGETALL user:1
//	respkv-cli status --http-addr 127.0.0.1:9121
package main
