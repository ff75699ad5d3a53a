package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset data in the database",
	Long: `Reset data in the database.

Examples:
  billcraft reset sequence    # Restart invoice numbering at 001
  billcraft reset all         # Delete all saved drafts and restart numbering`,
}

var resetSequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Restart invoice numbering at 001",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will restart invoice numbering at 001. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.SequenceRepo.Reset(context.Background()); err != nil {
			return fmt.Errorf("failed to reset sequence: %w", err)
		}

		fmt.Println("Invoice numbering restarted at 001.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete ALL saved drafts and restart numbering",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL saved drafts and restart numbering. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		ctx := context.Background()

		if err := appInstance.InvoiceService.ClearHistory(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		if err := appInstance.SequenceRepo.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset sequence: %w", err)
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetSequenceCmd)
	resetCmd.AddCommand(resetAllCmd)
}
