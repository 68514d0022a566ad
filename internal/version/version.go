// Package version reports the connector build version.
package version

import "runtime/debug"

// overridden with -ldflags "-X …/internal/version.version=vX.Y.Z"
var version = "dev"

func Version() string {
	if version != "dev" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return version
}
