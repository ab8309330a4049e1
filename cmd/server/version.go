package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type VersionInfo struct {
	Version   string
	GoVersion string
	Compiler  string
	Platform  string
}

func (info *VersionInfo) String() string {
	return "{cardioserve version: " + info.Version + ", Go version: " +
		info.GoVersion + ", Compiler version: " + info.Compiler + ", Platform: " + info.Platform + "}"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cardioserve version",
	Run: func(cmd *cobra.Command, args []string) {
		info := &VersionInfo{
			Version:   version,
			GoVersion: runtime.Version(),
			Compiler:  runtime.Compiler,
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		}
		fmt.Fprintln(cmd.OutOrStdout(), info.String())
	},
}
