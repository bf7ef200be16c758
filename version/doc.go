// Package version reports the build of the breedrun binary.
//
// Version and commit are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/breedkit/version.Version=0.3.0" ./cmd/breedrun
//
// When they are not, the module build info fills in what it can.
package version
