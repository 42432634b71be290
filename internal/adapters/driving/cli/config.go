package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage export settings",
	Long: `View and change the notion settings stored in the config file.

Keys are the names listed by "dendron-export schema", plus api_key for
the integration token.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a stored setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s.\n", key)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	value, ok := settingsService.Get(key)
	if !ok {
		return fmt.Errorf("%s is not set", key)
	}
	if isSecret(key) {
		value = maskSecret(value)
	}
	cmd.Println(value)
	return nil
}

func isSecret(key string) bool {
	if key == "api_key" {
		return true
	}
	for _, k := range settingsService.Schema() {
		if k.Key == key {
			return k.Secret
		}
	}
	return false
}

// maskSecret keeps the last four characters of a secret.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
