package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saifahn/dendron/internal/core/domain"
)

var (
	exportParentPage string
	exportConnection string
	exportRate       string
	exportBurst      string
)

var exportCmd = &cobra.Command{
	Use:   "export [paths...]",
	Short: "Export notes to Notion",
	Long: `Exports every note under the given files or directories as a Notion
page beneath the configured parent page.

Flags override the stored notion settings for this run only. The command
fails if any note could not be exported, after reporting every page that
was created.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportParentPage, "parent", "p", "", "parent page ID (overrides notion.parent_page_id)")
	exportCmd.Flags().StringVarP(&exportConnection, "connection", "c", "", "connection ID (overrides notion.connection_id)")
	exportCmd.Flags().StringVar(&exportRate, "rate", "", "requests per second (overrides notion.rate_per_second)")
	exportCmd.Flags().StringVar(&exportBurst, "burst", "", "requests issued back to back (overrides notion.burst)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exporterFactory == nil || noteLoader == nil {
		return errors.New("export service not configured")
	}

	ctx := cmd.Context()

	docs, err := noteLoader.Load(ctx, args...)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	if len(docs) == 0 {
		cmd.Println("No notes found.")
		return nil
	}

	exporter, err := exporterFactory(map[string]string{
		"parent_page_id":  exportParentPage,
		"connection_id":   exportConnection,
		"rate_per_second": exportRate,
		"burst":           exportBurst,
	})
	if err != nil {
		return fmt.Errorf("configure export: %w", err)
	}

	cmd.Printf("Exporting %d notes...\n", len(docs))
	result := exporter.ExportMany(ctx, docs)
	printExportResult(cmd, result)

	return result.Err()
}

func printExportResult(cmd *cobra.Command, result *domain.AggregateResult) {
	for _, c := range result.Created {
		cmd.Printf("  created %s -> %s\n", c.DocumentID, c.RemoteID)
	}
	for _, err := range result.Errors {
		cmd.PrintErrf("  failed %v\n", err)
	}

	cmd.Printf("%d created, %d failed.\n", len(result.Created), len(result.Errors))
	if result.RunID != "" {
		cmd.Printf("Run ID: %s\n", result.RunID)
	}
}
