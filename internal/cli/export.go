package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/andy/billcraft/internal/render"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a saved draft as a PDF",
	Long: `Export a saved draft as a PDF named Invoice-<number>.pdf.

The file is written to the configured output directory unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		rec, err := appInstance.HistoryRepo.GetByID(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to load draft: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("draft not found: %s", args[0])
		}

		outDir, _ := cmd.Flags().GetString("output")
		if outDir == "" {
			outDir = appInstance.Config.Invoice.OutputDir
		}

		path := filepath.Join(outDir, render.PDFFileName(*rec))
		if err := render.WritePDF(*rec, path, appInstance.Config.Invoice.ThankYouMessage); err != nil {
			return fmt.Errorf("failed to write PDF: %w", err)
		}

		fmt.Printf("✓ Exported %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output directory (defaults to configured output_dir)")
}
