// Package output renders reply frames for respkv-cli.
//
// Formats:
//
//   - plain: redis-cli style, one line per element with numbered aggregates
//   - table: maps as KEY/VALUE rows, arrays and sets as #/VALUE rows
//   - json: the reply converted to JSON values
//   - yaml: the same values as YAML
package output
