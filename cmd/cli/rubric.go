package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantgov/mrm/internal/config"
)

var rubricCmd = &cobra.Command{
	Use:   "rubric",
	Short: "Commands for inspecting the risk rubric",
}

var rubricShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active rubric",
	RunE: func(cmd *cobra.Command, args []string) error {
		svcs, err := buildServices()
		if err != nil {
			return err
		}
		return printJSON(svcs.rubric.ActiveRubric())
	},
}

var rubricValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a rubric file without activating it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rubric, err := config.LoadRubric(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("rubric is valid: %d factors, %d tiers\n",
			len(rubric.Weights), len(rubric.Thresholds))
		return nil
	},
}

func init() {
	rubricCmd.AddCommand(rubricShowCmd)
	rubricCmd.AddCommand(rubricValidateCmd)
	rootCmd.AddCommand(rubricCmd)
}
