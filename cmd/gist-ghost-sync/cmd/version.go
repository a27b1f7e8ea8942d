package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// overridden at build time with -ldflags "-X ...cmd.version="
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}
