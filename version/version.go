// Package version reports the build version, either injected at build time:
//
//	go build -ldflags "-X github.com/vtervo/skooppi/version.Version=$(git describe --dirty)"
//
// or, failing that, recovered from the VCS stamp in the build info.
package version

import "runtime/debug"

var Version string

var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var revision string
	var modified bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if len(revision) < 7 {
		return ""
	}
	if modified {
		return revision[:7] + "-dirty"
	}
	return revision[:7]
}()

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	return Hash
}()
