// cmd/librarium/cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "librarium",
	Short: "In-memory catalog-and-lending engine",
	Long: `librarium tracks a catalog of loanable items, registered holders,
and the current loans between them, exposing the engine over a small REST
API with an optional snapshot persistence boundary.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML configuration file")
}
