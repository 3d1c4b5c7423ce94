package config

// Version is the current Nocturne toolchain version.
var Version = "0.1.0"

// IsTestMode indicates the inference core is running under `go test`.
// The printer uses it to normalize auto-generated type-variable names
// (t1, t2, ...) to "t?" so test expectations stay stable across runs.
var IsTestMode = false

// IsLSPMode indicates the core is driving an editor session. Like
// IsTestMode, it asks the printer to normalize variable names, this
// time for a clean hover/diagnostic UI rather than deterministic tests.
var IsLSPMode = false
