// Package version holds the build stamp of moc-size.
package version

import (
	"fmt"
	"runtime"
)

// AppName is the name the tool reports itself under, in output and in log fields.
const AppName = "moc-size"

// Set with -ldflags "-X mocsize/pkg/version.Version=1.2.3 -X mocsize/pkg/version.Commit=abcdefg -X mocsize/pkg/version.BuildTime=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info is the build stamp plus the runtime it is running on.
type Info struct {
	Name      string
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string // GOOS/GOARCH
}

func Get() Info {
	return Info{
		Name:      AppName,
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders one line such as
// "moc-size version 1.2.3 (commit: abcdefg) built at 2026-04-27T15:04:05Z with go1.23.1 on linux/amd64".
func (i Info) String() string {
	return fmt.Sprintf("%s version %s (commit: %s) built at %s with %s on %s",
		i.Name, i.Version, i.GitCommit, i.BuildTime, i.GoVersion, i.Platform)
}
