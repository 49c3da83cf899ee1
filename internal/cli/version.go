package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information variables - set by main.go
var (
	version   = "dev"
	gitCommit = "none"
	buildTime = "unknown"
)

// SetVersionInfo sets the version information from main.go
func SetVersionInfo(v, commit, built string) {
	version = v
	gitCommit = commit
	buildTime = built
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "scantable %s\n", version)
			fmt.Fprintf(w, "  Git Commit:  %s\n", gitCommit)
			fmt.Fprintf(w, "  Build Time:  %s\n", buildTime)
			fmt.Fprintf(w, "  Go Version:  %s\n", runtime.Version())
			fmt.Fprintf(w, "  OS/Arch:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
