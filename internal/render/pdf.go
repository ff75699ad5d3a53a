package render

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/andy/billcraft/internal/domain"
)

// PDFFileName returns the export name for a snapshot: Invoice-<number>.pdf
func PDFFileName(inv domain.SavedInvoice) string {
	return fmt.Sprintf("Invoice-%s.pdf", inv.Header.InvoiceNumber)
}

// WritePDF renders a frozen snapshot to a PDF at the given path. It reads the
// record and its computed totals only; it never mutates the invoice or the
// store. thankYou is the configured footer message; empty skips it.
func WritePDF(inv domain.SavedInvoice, path string, thankYou string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", inv.Header.InvoiceNumber), false)
	pdf.AddPage()

	left, _, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - left - right

	// Title block
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(usable/2, 12, "INVOICE", "", 0, "L", false, 0, "")
	drawLogo(pdf, inv.Logo, pageWidth-right-28, 10)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if inv.Header.IsTaxInvoice {
		pdf.CellFormat(usable/2, 6, "TAX INVOICE", "", 0, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice #%s", inv.Header.InvoiceNumber), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(usable/3, 5, fmt.Sprintf("Issue Date: %s", inv.Header.IssueDate), "", 0, "L", false, 0, "")
	pdf.CellFormat(usable/3, 5, fmt.Sprintf("Due Date: %s", inv.Header.DueDate), "", 0, "L", false, 0, "")
	pdf.CellFormat(usable/3, 5, fmt.Sprintf("Payment: %s", inv.Header.PaymentMethod), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Parties
	writeParties(pdf, inv, usable)

	// Items table
	writeItemsTable(pdf, inv, usable)

	// Totals
	writeTotals(pdf, inv, usable)

	// Payment details
	writeBankDetails(pdf, inv.BankDetails)

	// Footer
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 10)
	if thankYou != "" {
		pdf.CellFormat(usable, 5, thankYou, "", 1, "C", false, 0, "")
	}
	footer := fmt.Sprintf("%s | %s | %s", inv.Seller.BusinessName, inv.Seller.Phone, inv.Seller.Email)
	pdf.CellFormat(usable, 5, footer, "", 1, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

func writeParties(pdf *gofpdf.Fpdf, inv domain.SavedInvoice, usable float64) {
	col := usable / 2

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col, 6, "FROM", "", 0, "L", false, 0, "")
	pdf.CellFormat(col, 6, "BILL TO", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	fromLines := sellerLines(inv.Seller)
	toLines := clientLines(inv.Client)
	for i := 0; i < len(fromLines) || i < len(toLines); i++ {
		var from, to string
		if i < len(fromLines) {
			from = fromLines[i]
		}
		if i < len(toLines) {
			to = toLines[i]
		}
		pdf.CellFormat(col, 5, from, "", 0, "L", false, 0, "")
		pdf.CellFormat(col, 5, to, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func writeItemsTable(pdf *gofpdf.Fpdf, inv domain.SavedInvoice, usable float64) {
	descW := usable - 90
	numW := 22.5

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(descW, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(numW, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(numW, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(numW, 7, "Discount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(numW, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range inv.Items {
		pdf.CellFormat(descW, 7, it.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(numW, 7, trimZeros(it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(numW, 7, domain.FormatMoney(it.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(numW, 7, domain.FormatMoney(it.Discount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(numW, 7, domain.FormatMoney(it.Amount()), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func writeTotals(pdf *gofpdf.Fpdf, inv domain.SavedInvoice, usable float64) {
	labelW := usable - 45.0
	valueW := 45.0

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelW, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 6, domain.FormatMoney(inv.Subtotal()), "", 1, "R", false, 0, "")

	taxLabel := fmt.Sprintf("%s (%s%%)", inv.TaxInfo.TaxName, trimZeros(inv.TaxInfo.TaxPercentage))
	pdf.CellFormat(labelW, 6, taxLabel, "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 6, domain.FormatMoney(inv.TaxAmount()), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelW, 8, fmt.Sprintf("TOTAL (%s)", inv.Currency), "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 8, domain.FormatMoney(inv.Total()), "", 1, "R", false, 0, "")
	pdf.Ln(6)
}

func writeBankDetails(pdf *gofpdf.Fpdf, bank domain.BankDetails) {
	if bank.AccountName == "" && bank.AccountNumber == "" && bank.BankName == "" {
		return
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "PAYMENT DETAILS", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	rows := [][2]string{
		{"Account Name", bank.AccountName},
		{"Account Number", bank.AccountNumber},
		{"BSB", bank.BSB},
		{"Bank Name", bank.BankName},
		{"Notes", bank.PaymentNotes},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.CellFormat(40, 5, row[0]+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, row[1], "", 1, "L", false, 0, "")
	}
}

// drawLogo embeds a data-URL image at the given position. Anything that is
// not a decodable data URL is skipped; a broken logo never blocks an export.
func drawLogo(pdf *gofpdf.Fpdf, logo *string, x, y float64) {
	if logo == nil {
		return
	}
	imageType, data, ok := decodeDataURL(*logo)
	if !ok {
		return
	}

	name := "invoice-logo"
	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	pdf.RegisterImageOptionsReader(name, opts, strings.NewReader(string(data)))
	if pdf.Err() {
		return
	}
	pdf.ImageOptions(name, x, y, 25, 0, false, opts, 0, "")
}

// decodeDataURL splits a "data:image/<type>;base64,<payload>" reference into
// an image type gofpdf understands and the raw bytes.
func decodeDataURL(s string) (string, []byte, bool) {
	if !strings.HasPrefix(s, "data:image/") {
		return "", nil, false
	}
	meta, payload, found := strings.Cut(s, ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return "", nil, false
	}

	imageType := strings.TrimSuffix(strings.TrimPrefix(meta, "data:image/"), ";base64")
	switch imageType {
	case "png", "jpeg", "jpg", "gif":
	default:
		return "", nil, false
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, false
	}
	return imageType, data, true
}

func sellerLines(s domain.Seller) []string {
	lines := make([]string, 0, 8)
	if s.BusinessName != "" {
		lines = append(lines, s.BusinessName)
	}
	if s.Street != "" {
		lines = append(lines, s.Street)
	}
	if s.City != "" || s.State != "" || s.Postcode != "" {
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("%s %s %s", s.City, s.State, s.Postcode)))
	}
	if s.Country != "" {
		lines = append(lines, s.Country)
	}
	if s.Phone != "" {
		lines = append(lines, "Phone: "+s.Phone)
	}
	if s.Email != "" {
		lines = append(lines, "Email: "+s.Email)
	}
	if s.ABN != "" {
		lines = append(lines, "ABN: "+s.ABN)
	}
	if s.AuthorizedPerson != "" {
		lines = append(lines, "Authorized Person: "+s.AuthorizedPerson)
	}
	return lines
}

func clientLines(c domain.Client) []string {
	lines := make([]string, 0, 4)
	if c.Name != "" {
		lines = append(lines, c.Name)
	}
	if c.Address != "" {
		lines = append(lines, c.Address)
	}
	if c.Email != "" {
		lines = append(lines, c.Email)
	}
	if c.Phone != "" {
		lines = append(lines, c.Phone)
	}
	return lines
}

// trimZeros renders a quantity or percentage without trailing decimal noise.
func trimZeros(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
