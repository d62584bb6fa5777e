// Package cli implements the mrm-admin command line tool. It operates
// directly against the service database using the same application services
// as the HTTP API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// rootCmd is the base command of the mrm-admin binary.
var rootCmd = &cobra.Command{
	Use:   "mrm-admin",
	Short: "A CLI tool for administering the MRM Governance Service.",
	Long: `mrm-admin is a command-line interface for administrative tasks on the
MRM Governance Service: registering models, running risk tiering,
inspecting the rubric, and exporting evidence bundles.`,
}

// Execute is the main entry point for the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the configuration file")
}
