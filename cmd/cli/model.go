package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantgov/mrm/internal/application/dto"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Commands for managing the model inventory",
}

var modelRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a model and run its initial tiering assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			return fmt.Errorf("--file flag is required")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read model file: %w", err)
		}

		var req dto.RegisterModelRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("parse model file: %w", err)
		}

		svcs, err := buildServices()
		if err != nil {
			return err
		}

		model, record, err := svcs.inventory.RegisterModel(cmd.Context(), &req)
		if err != nil {
			return err
		}
		return printJSON(map[string]interface{}{
			"model":   model,
			"tiering": dto.NewTieringResult(record),
		})
	},
}

var modelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered models with their latest risk tiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		svcs, err := buildServices()
		if err != nil {
			return err
		}
		summaries, err := svcs.inventory.ListModels(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(summaries)
	},
}

var modelShowCmd = &cobra.Command{
	Use:   "show <model_id>",
	Short: "Show a registered model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svcs, err := buildServices()
		if err != nil {
			return err
		}
		model, err := svcs.inventory.GetModel(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(model)
	},
}

func init() {
	modelRegisterCmd.Flags().String("file", "", "JSON file describing the model")
	modelCmd.AddCommand(modelRegisterCmd)
	modelCmd.AddCommand(modelListCmd)
	modelCmd.AddCommand(modelShowCmd)
	rootCmd.AddCommand(modelCmd)
}
