package domain

import (
	"fmt"
	"time"
)

// SavedInvoice is an immutable point-in-time snapshot of the working invoice,
// as persisted to history. The JSON field names are the wire contract; stored
// records must round-trip unchanged.
type SavedInvoice struct {
	ID          string      `json:"id"`
	SavedAt     time.Time   `json:"savedAt"`
	Header      Header      `json:"invoiceHeader"`
	Seller      Seller      `json:"seller"`
	Client      Client      `json:"client"`
	Items       []Item      `json:"items"`
	TaxInfo     TaxInfo     `json:"taxInfo"`
	Currency    string      `json:"currency"`
	BankDetails BankDetails `json:"bankDetails"`
	Logo        *string     `json:"logo"`
}

// Snapshot deep-copies the invoice into a SavedInvoice. The id is derived
// from the save instant and the display number, unique within the store.
func Snapshot(inv *Invoice, savedAt time.Time) SavedInvoice {
	items := make([]Item, len(inv.Items))
	copy(items, inv.Items)

	var logo *string
	if inv.Logo != "" {
		l := inv.Logo
		logo = &l
	}

	return SavedInvoice{
		ID:          fmt.Sprintf("%d-%s", savedAt.UnixMilli(), inv.Header.InvoiceNumber),
		SavedAt:     savedAt,
		Header:      inv.Header,
		Seller:      inv.Seller,
		Client:      inv.Client,
		Items:       items,
		TaxInfo:     inv.TaxInfo,
		Currency:    inv.Currency,
		BankDetails: inv.BankDetails,
		Logo:        logo,
	}
}

// Restore rebuilds a working invoice from a snapshot. The returned aggregate
// owns its own item slice; editing it cannot mutate the stored record.
func (s SavedInvoice) Restore() *Invoice {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)

	logo := ""
	if s.Logo != nil {
		logo = *s.Logo
	}

	return &Invoice{
		Header:      s.Header,
		Seller:      s.Seller,
		Client:      s.Client,
		Items:       items,
		TaxInfo:     s.TaxInfo,
		Currency:    s.Currency,
		BankDetails: s.BankDetails,
		Logo:        logo,
	}
}

// Totals on the snapshot mirror the live calculator so render collaborators
// can work from a frozen record.
func (s SavedInvoice) Subtotal() float64 {
	var sum float64
	for _, it := range s.Items {
		sum += it.Amount()
	}
	return sum
}

func (s SavedInvoice) TaxAmount() float64 {
	return s.Subtotal() * s.TaxInfo.TaxPercentage / 100
}

func (s SavedInvoice) Total() float64 {
	return s.Subtotal() + s.TaxAmount()
}
