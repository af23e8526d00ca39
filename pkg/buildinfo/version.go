// Package buildinfo carries the version stamped into the polyfold binary.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/polyfold/polyfold/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/polyfold/polyfold/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/polyfold/polyfold/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/polyfold
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build stamp as reported by the HTTP API.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Current returns the stamp of the running binary.
func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (%s, built %s)", i.Version, i.Commit, i.Date)
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\n", Current())
}
