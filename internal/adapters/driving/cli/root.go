// Package cli provides the command-line interface for dendron-export.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/saifahn/dendron/internal/core/ports/driven"
	"github.com/saifahn/dendron/internal/core/ports/driving"
	"github.com/saifahn/dendron/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired by main.
var (
	exporterFactory driving.ExporterFactory
	noteLoader      driven.NoteLoader
	historyService  driving.HistoryService
	settingsService driving.SettingsService
)

// Services holds the ports the commands dispatch to.
type Services struct {
	Exporters driving.ExporterFactory
	Notes     driven.NoteLoader
	History   driving.HistoryService
	Settings  driving.SettingsService
}

var rootCmd = &cobra.Command{
	Use:   "dendron-export",
	Short: "Export Dendron notes to Notion",
	Long: `dendron-export converts markdown notes to Notion blocks and creates
one page per note under a parent page.

Pages are created concurrently under a shared rate limit. A failed note
never stops the others; every failure is reported at the end.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices installs the services used by the commands.
func SetServices(s Services) {
	exporterFactory = s.Exporters
	noteLoader = s.Notes
	historyService = s.History
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Commands stop blocking operations when
// ctx is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
