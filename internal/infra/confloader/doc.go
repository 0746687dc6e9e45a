// Package confloader loads configuration into typed structs using koanf.
//
// Sources, lowest to highest priority:
//
//  1. Default values already present in the target struct
//  2. A YAML configuration file
//  3. Environment variables (RESPKV_ prefix), optionally seeded from a
//     .env file with LoadDotEnv
//  4. Explicit overrides passed to LoadMap, used for command-line flags
//
// Watcher reports writes to the configuration file so the caller can
// reload and apply settings that may change at runtime.
package confloader
