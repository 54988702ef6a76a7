package app

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/heartmarshall/dictionary-importer/internal/app.Version=v0.3.0".
// Commit and BuildTime fall back to the VCS stamp embedded by the go tool.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion formats the version for the startup log and the version command.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if commit == "" || built == "" {
		rev, at := vcsStamp()
		if commit == "" {
			commit = rev
		}
		if built == "" {
			built = at
		}
	}
	return formatVersion(Version, commit, built)
}

func formatVersion(version, commit, built string) string {
	if commit == "" {
		commit = "unknown"
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}

func vcsStamp() (revision, at string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			at = s.Value
		}
	}
	return revision, at
}
