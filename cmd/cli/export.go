package cli

import (
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Produce an evidence bundle of the inventory, tiering, and rubric",
	RunE: func(cmd *cobra.Command, args []string) error {
		svcs, err := buildServices()
		if err != nil {
			return err
		}
		bundle, err := svcs.export.RunExport(cmd.Context(), "mrm-admin")
		if err != nil {
			return err
		}
		return printJSON(bundle)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
