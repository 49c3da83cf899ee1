package main

import (
	"fmt"
	"os"

	"github.com/tsawler/scantable/internal/cli"
)

// Version information - these will be set during build time via ldflags
var (
	Version   = "dev"     // Application version (e.g., "v1.2.3")
	GitCommit = "none"    // Git commit hash
	BuildTime = "unknown" // Build timestamp
)

func main() {
	cli.SetVersionInfo(Version, GitCommit, BuildTime)

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
