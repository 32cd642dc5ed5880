package adapter

import (
	"runtime"
	"runtime/debug"
)

// BuildToolName is the tool identity recorded in build-tool provenance
// markers.
const BuildToolName = "mvnscan"

// Platform provides runtime and build-tool identity for provenance markers.
// It replaces ambient global lookups so tests can inject deterministic
// values.
type Platform interface {
	RuntimeVersion() string
	Vendor() string
	BuildToolVersion() string
}

// LocalPlatform reads platform information from the running process.
type LocalPlatform struct{}

// NewLocalPlatform constructs a LocalPlatform.
func NewLocalPlatform() *LocalPlatform {
	return &LocalPlatform{}
}

// RuntimeVersion returns the version string of the running runtime.
func (*LocalPlatform) RuntimeVersion() string {
	return runtime.Version()
}

// Vendor returns the compiler vendor identifier.
func (*LocalPlatform) Vendor() string {
	return runtime.Compiler
}

// BuildToolVersion returns the version this tool was built as, or "devel"
// when no module build info is embedded.
func (*LocalPlatform) BuildToolVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "devel"
	}

	return info.Main.Version
}
