// SPDX-License-Identifier: Apache-2.0

// Package version reports gitmit's build version.
package version

import "runtime/debug"

// gitVersion records the version baked in at build time via ldflags.
var gitVersion = "devel"

func GetVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	if buildInfo.Main.Version == "(devel)" || buildInfo.Main.Version == "" {
		return gitVersion
	}

	return buildInfo.Main.Version
}
