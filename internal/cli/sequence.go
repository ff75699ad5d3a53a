package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Show the next invoice number",
	Long: `Show the next invoice number without consuming it. The number advances
only when a draft is saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := appInstance.InvoiceService.PeekNumber(context.Background())
		if err != nil {
			return fmt.Errorf("failed to read sequence: %w", err)
		}

		fmt.Printf("Next invoice number: %s\n", number)
		return nil
	},
}
