package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show export history",
	Long: `Lists recorded export runs, most recent first.
If a run ID is provided, lists the pages that run created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var historyPageCmd = &cobra.Command{
	Use:   "page [doc-id]",
	Short: "Show the latest Notion page created for a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryPage,
}

func init() {
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.AddCommand(historyPageCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	ctx := cmd.Context()

	if len(args) > 0 {
		records, err := historyService.Records(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get run %s: %w", args[0], err)
		}
		if historyJSON {
			return outputJSON(cmd, records)
		}
		if len(records) == 0 {
			cmd.Println("No pages were created by this run.")
			return nil
		}
		for _, r := range records {
			cmd.Printf("  %s  %s -> %s\n", r.ExportedAt.Local().Format(time.DateTime), r.DocumentID, r.RemoteID)
		}
		return nil
	}

	runs, err := historyService.Runs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if historyJSON {
		return outputJSON(cmd, runs)
	}
	if len(runs) == 0 {
		cmd.Println("No exports recorded.")
		return nil
	}
	for _, r := range runs {
		cmd.Printf("  %s  %s  %d/%d created\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Created, r.Documents)
	}
	return nil
}

func runHistoryPage(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	remoteID, err := historyService.RemoteID(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to find page for %s: %w", args[0], err)
	}
	cmd.Println(remoteID)
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
