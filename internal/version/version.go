// Package version holds the build-time version variables for the iam-graph
// binary. The zero values are used for local builds; release builds override
// them via -ldflags.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the formatted version string printed by iam-graph version.
func Info() string {
	return fmt.Sprintf(
		"iam-graph version %s\ncommit: %s\nbuilt: %s\n",
		Version,
		Commit,
		Date,
	)
}
