package render

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andy/billcraft/internal/domain"
)

func sampleInvoice() domain.SavedInvoice {
	inv := &domain.Invoice{
		Header: domain.Header{
			InvoiceNumber: "007",
			IssueDate:     "2026-08-30",
			DueDate:       "2026-09-13",
			PaymentMethod: "Bank Transfer",
			IsTaxInvoice:  true,
		},
		Seller: domain.Seller{
			BusinessName: "Acme Consulting",
			Email:        "billing@acme.test",
			Phone:        "0400 000 000",
		},
		Client: domain.Client{Name: "Widget Co", Email: "ap@widget.test"},
		Items: []domain.Item{
			{ID: 1, Description: "Design work", Quantity: 2, UnitPrice: 50},
			{ID: 2, Description: "Hosting", Quantity: 1, UnitPrice: 10, Discount: 25},
		},
		TaxInfo:  domain.TaxInfo{TaxName: "GST", TaxPercentage: 10},
		Currency: "AUD",
		BankDetails: domain.BankDetails{
			AccountName:   "Acme Consulting",
			AccountNumber: "12345678",
			BSB:           "062-000",
			BankName:      "Test Bank",
		},
	}
	return domain.Snapshot(inv, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
}

func TestPDFFileName(t *testing.T) {
	inv := sampleInvoice()
	if got := PDFFileName(inv); got != "Invoice-007.pdf" {
		t.Errorf("PDFFileName = %q, want %q", got, "Invoice-007.pdf")
	}
}

func TestText_ContainsKeyFields(t *testing.T) {
	out := Text(sampleInvoice())

	for _, want := range []string{
		"TAX INVOICE",
		"Invoice #:  007",
		"2026-08-30",
		"Acme Consulting",
		"Widget Co",
		"Design work",
		"Hosting",
		"-15.00",  // discounted line goes negative and is shown as-is
		"85.00",   // subtotal: 100 + (10 - 25)
		"GST (10%)",
		"8.50",
		"93.50",
		"062-000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text render missing %q\n%s", want, out)
		}
	}
}

func TestWritePDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	inv := sampleInvoice()
	path := filepath.Join(dir, "exports", PDFFileName(inv))

	if err := WritePDF(inv, path, "Thank you for your business!"); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty PDF file")
	}
}

func TestDecodeDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("not-a-real-png"))

	imageType, data, ok := decodeDataURL("data:image/png;base64," + payload)
	if !ok {
		t.Fatal("expected valid data URL to decode")
	}
	if imageType != "png" {
		t.Errorf("imageType = %q, want png", imageType)
	}
	if string(data) != "not-a-real-png" {
		t.Errorf("payload mismatch: %q", data)
	}

	for _, bad := range []string{
		"",
		"https://example.test/logo.png",
		"data:image/png;base64,!!!",
		"data:image/svg+xml;base64," + payload,
		"data:text/plain;base64," + payload,
	} {
		if _, _, ok := decodeDataURL(bad); ok {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}
