package cli

import (
	"github.com/spf13/cobra"

	"github.com/quantgov/mrm/internal/application/dto"
)

var tierCmd = &cobra.Command{
	Use:   "tier",
	Short: "Commands for running and inspecting risk tiering",
}

var tierRunCmd = &cobra.Command{
	Use:   "run <model_id>",
	Short: "Run a tiering assessment against the active rubric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svcs, err := buildServices()
		if err != nil {
			return err
		}
		record, err := svcs.tiering.PerformTiering(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(dto.NewTieringResult(record))
	},
}

var tierLatestCmd = &cobra.Command{
	Use:   "latest <model_id>",
	Short: "Show the model's most recent tiering record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svcs, err := buildServices()
		if err != nil {
			return err
		}
		record, err := svcs.tiering.GetLatestTiering(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(dto.NewTieringResult(record))
	},
}

var tierHistoryCmd = &cobra.Command{
	Use:   "history <model_id>",
	Short: "Show the model's full tiering history, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svcs, err := buildServices()
		if err != nil {
			return err
		}
		records, err := svcs.tiering.GetTieringHistory(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(dto.NewTieringResults(records))
	},
}

func init() {
	tierCmd.AddCommand(tierRunCmd)
	tierCmd.AddCommand(tierLatestCmd)
	tierCmd.AddCommand(tierHistoryCmd)
	rootCmd.AddCommand(tierCmd)
}
