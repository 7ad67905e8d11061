// Package buildinfo exposes the binary's version metadata.
package buildinfo

import (
	"runtime/debug"
	"strings"
	"time"
)

// Overridable at link time with -ldflags "-X ...".
var (
	Version    = "0.1.0"
	CommitHash = ""
	BuildDate  = ""
)

// Info is normalized build metadata for display. CommitHash and BuildDate
// are empty when neither the linker nor the VCS stamp provides them.
type Info struct {
	Version    string
	CommitHash string
	BuildDate  string
}

// Current resolves build metadata, preferring linker overrides and falling
// back to the runtime VCS stamp.
func Current() Info {
	info := Info{
		Version:    strings.TrimSpace(Version),
		CommitHash: strings.TrimSpace(CommitHash),
		BuildDate:  strings.TrimSpace(BuildDate),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		var revision, stamp string
		dirty := false
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				revision = strings.TrimSpace(s.Value)
			case "vcs.time":
				stamp = strings.TrimSpace(s.Value)
			case "vcs.modified":
				dirty = strings.EqualFold(strings.TrimSpace(s.Value), "true")
			}
		}
		if info.CommitHash == "" && revision != "" {
			if len(revision) > 12 {
				revision = revision[:12]
			}
			if dirty {
				revision += "-dirty"
			}
			info.CommitHash = revision
		}
		if info.BuildDate == "" {
			info.BuildDate = stamp
		}
	}

	if parsed, err := time.Parse(time.RFC3339, info.BuildDate); err == nil {
		info.BuildDate = parsed.UTC().Format("2006-01-02 15:04:05 UTC")
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	return info
}
