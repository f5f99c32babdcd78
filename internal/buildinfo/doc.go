// Package buildinfo reports the version of the ppp binary. Release builds
// stamp the variables below with
//
//	go build -ldflags "-X github.com/AbdelazizMoustafa10m/ppp/internal/buildinfo.Version=1.0.0 ..."
package buildinfo

var (
	// Version is the semantic version or git describe output.
	Version = "dev"
	// Commit is the short git commit SHA.
	Commit = "unknown"
	// Date is the UTC build timestamp in RFC3339 format.
	Date = "unknown"
)
