// Package buildinfo exposes build-time version information.
//
// Values are injected with ldflags:
//
//	go build -ldflags "-X github.com/yndnr/respkv/internal/infra/buildinfo.Version=v1.0.0"
//
// When they are not, Get falls back to the module and VCS metadata the Go
// toolchain embeds in the binary.
package buildinfo
