// Package version holds build information for the ontoeval binary.
package version

var (
	Version = "0.1.0"

	// git hash should be filled by:
	// 	go build -ldflags="-X github.com/cayleygraph/ontoeval/version.GitHash=xxxx"

	GitHash   = "dev snapshot"
	BuildDate string
)

// String returns the version line printed by the CLI.
func String() string {
	s := "ontoeval " + Version + " (" + GitHash + ")"
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}
