package main

import "runtime/debug"

// Version is the release version (set via -ldflags "-X main.Version=...").
var Version = "dev"

// resolveVersion prefers the linked-in version, then the module version
// recorded by `go install`, then "unknown".
func resolveVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "unknown"
}
