// Package version provides version information for the nasamini binary.
package version

import "fmt"

// Name is the implementation name advertised to tool clients.
const Name = "nasa-mini"

// Version is the current version of the application.
// This is set at build time using -ldflags.
var Version = "dev"

// BuildTime is when the binary was built.
// This is set at build time using -ldflags.
var BuildTime = "unknown"

// String returns the formatted version information.
func String() string {
	return fmt.Sprintf("%s version %s (built %s)", Name, Version, BuildTime)
}
