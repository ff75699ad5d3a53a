package render

import (
	"fmt"
	"strings"

	"github.com/andy/billcraft/internal/domain"
)

// Text renders a saved invoice as plain text, the same layout the preview
// screen shows and `history show` prints.
func Text(inv domain.SavedInvoice) string {
	var b strings.Builder

	sep := strings.Repeat("=", 64)
	line := strings.Repeat("-", 64)

	b.WriteString("INVOICE")
	if inv.Header.IsTaxInvoice {
		b.WriteString("  (TAX INVOICE)")
	}
	b.WriteString("\n" + sep + "\n")
	b.WriteString(fmt.Sprintf("Invoice #:  %s\n", inv.Header.InvoiceNumber))
	b.WriteString(fmt.Sprintf("Issued:     %s\n", inv.Header.IssueDate))
	b.WriteString(fmt.Sprintf("Due:        %s\n", inv.Header.DueDate))
	if inv.Header.PaymentMethod != "" {
		b.WriteString(fmt.Sprintf("Payment:    %s\n", inv.Header.PaymentMethod))
	}

	if lines := sellerLines(inv.Seller); len(lines) > 0 {
		b.WriteString("\nFrom:\n")
		for _, l := range lines {
			b.WriteString("  " + l + "\n")
		}
	}

	if lines := clientLines(inv.Client); len(lines) > 0 {
		b.WriteString("\nBill To:\n")
		for _, l := range lines {
			b.WriteString("  " + l + "\n")
		}
	}

	b.WriteString("\n" + line + "\n")
	b.WriteString(fmt.Sprintf("%-28s %7s %9s %8s %9s\n", "Description", "Qty", "Price", "Disc", "Amount"))
	b.WriteString(line + "\n")

	for _, it := range inv.Items {
		desc := it.Description
		if len(desc) > 28 {
			desc = desc[:25] + "..."
		}
		b.WriteString(fmt.Sprintf("%-28s %7s %9s %8s %9s\n",
			desc,
			trimZeros(it.Quantity),
			domain.FormatMoney(it.UnitPrice),
			domain.FormatMoney(it.Discount),
			domain.FormatMoney(it.Amount()),
		))
	}

	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("%54s %9s\n", "Subtotal", domain.FormatMoney(inv.Subtotal())))
	taxLabel := fmt.Sprintf("%s (%s%%)", inv.TaxInfo.TaxName, trimZeros(inv.TaxInfo.TaxPercentage))
	b.WriteString(fmt.Sprintf("%54s %9s\n", taxLabel, domain.FormatMoney(inv.TaxAmount())))
	totalLabel := fmt.Sprintf("TOTAL (%s)", inv.Currency)
	b.WriteString(fmt.Sprintf("%54s %9s\n", totalLabel, domain.FormatMoney(inv.Total())))

	bank := inv.BankDetails
	if bank.AccountName != "" || bank.AccountNumber != "" || bank.BankName != "" {
		b.WriteString("\nPayment Details:\n")
		if bank.AccountName != "" {
			b.WriteString(fmt.Sprintf("  Account Name:   %s\n", bank.AccountName))
		}
		if bank.AccountNumber != "" {
			b.WriteString(fmt.Sprintf("  Account Number: %s\n", bank.AccountNumber))
		}
		if bank.BSB != "" {
			b.WriteString(fmt.Sprintf("  BSB:            %s\n", bank.BSB))
		}
		if bank.BankName != "" {
			b.WriteString(fmt.Sprintf("  Bank:           %s\n", bank.BankName))
		}
		if bank.PaymentNotes != "" {
			b.WriteString(fmt.Sprintf("  Notes:          %s\n", bank.PaymentNotes))
		}
	}

	b.WriteString("\n" + sep + "\n")
	return b.String()
}
