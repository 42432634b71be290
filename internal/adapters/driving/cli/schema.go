package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "List the export settings",
	RunE:  runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Schema() {
		required := "optional"
		if key.Required {
			required = "required"
		}
		cmd.Printf("  %-16s %-8s %s\n", key.Key, key.Type, required)
		cmd.Printf("      %s\n", key.Description)
		if key.Default != "" {
			cmd.Printf("      default: %s\n", key.Default)
		}
	}
	return nil
}
