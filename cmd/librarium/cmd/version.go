// cmd/librarium/cmd/version.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the librarium version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("librarium", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
