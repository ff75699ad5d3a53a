package cli

import (
	"context"
	"fmt"

	"github.com/andy/billcraft/internal/domain"
	"github.com/andy/billcraft/internal/render"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved invoice drafts",
	Long:  `List, show, and delete saved invoice drafts. History keeps the most recent drafts, newest first.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved drafts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		records, err := appInstance.InvoiceService.History(ctx)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No saved drafts")
			return nil
		}

		// Print table header
		fmt.Printf("%-22s %-8s %-24s %-18s %12s\n", "ID", "Number", "Client", "Saved", "Total")
		fmt.Println("----------------------------------------------------------------------------------------")

		for _, rec := range records {
			clientName := rec.Client.Name
			if clientName == "" {
				clientName = "(no client)"
			}
			fmt.Printf("%-22s %-8s %-24s %-18s %12s\n",
				rec.ID,
				rec.Header.InvoiceNumber,
				truncate(clientName, 24),
				rec.SavedAt.Local().Format("2006-01-02 15:04"),
				rec.Currency+" "+domain.FormatMoney(rec.Total()),
			)
		}

		fmt.Printf("\nTotal: %d of %d slots used\n", len(records), domain.MaxHistoryRecords)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a saved draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		rec, err := appInstance.HistoryRepo.GetByID(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to load draft: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("draft not found: %s", args[0])
		}

		fmt.Print(render.Text(*rec))
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.InvoiceService.DeleteDraft(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete draft: %w", err)
		}

		fmt.Printf("✓ Deleted draft %s\n", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL saved drafts. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.InvoiceService.ClearHistory(context.Background()); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}

		fmt.Println("All saved drafts have been deleted.")
		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}
