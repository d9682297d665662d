// Package version holds build metadata for the gotruss binary.
package version

// Set at build time, for example:
//
//	go build -ldflags "-X github.com/alexiusacademia/gotruss/internal/version.Version=0.2.0"
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"

	Author = "Alexius Academia"
	Year   = "2026"
)

// String formats the version line printed by the CLI
func String() string {
	s := "gotruss v" + Version
	if GitCommit != "unknown" {
		s += " (" + GitCommit + ")"
	}
	if BuildTime != "unknown" {
		s += " built " + BuildTime
	}
	return s
}
