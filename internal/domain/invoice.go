package domain

import "errors"

// MaxHistoryRecords is the hard bound on saved drafts. When a save pushes the
// history past this, the oldest records are evicted.
const MaxHistoryRecords = 20

var ErrLastItem = errors.New("an invoice must keep at least one item")

// Item is a single invoice line: a description priced as quantity times unit
// price, less a flat discount.
type Item struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Discount    float64 `json:"discount"`
}

// Amount returns quantity*unitPrice - discount. A discount larger than the
// line value yields a negative amount; that is the observed product behavior
// and is deliberately not clamped.
func (it Item) Amount() float64 {
	return it.Quantity*it.UnitPrice - it.Discount
}

type Seller struct {
	BusinessName     string `json:"businessName"`
	Street           string `json:"street"`
	City             string `json:"city"`
	State            string `json:"state"`
	Postcode         string `json:"postcode"`
	Country          string `json:"country"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	ABN              string `json:"abn"`
	AuthorizedPerson string `json:"authorizedPerson"`
}

type Client struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type BankDetails struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	BSB           string `json:"bsb"`
	BankName      string `json:"bankName"`
	PaymentNotes  string `json:"paymentNotes"`
}

// Header carries the document-level fields. Dates are kept as the
// "YYYY-MM-DD" strings the form edits; they are display data, not computed on.
type Header struct {
	InvoiceNumber string `json:"invoiceNumber"`
	IssueDate     string `json:"issueDate"`
	DueDate       string `json:"dueDate"`
	PaymentMethod string `json:"paymentMethod"`
	IsTaxInvoice  bool   `json:"isTaxInvoice"`
}

type TaxInfo struct {
	TaxName       string  `json:"taxName"`
	TaxPercentage float64 `json:"taxPercentage"`
}

// Invoice is the live working document: the single mutable aggregate the
// editor operates on. Saved snapshots are SavedInvoice values.
type Invoice struct {
	Header      Header
	Seller      Seller
	Client      Client
	Items       []Item
	TaxInfo     TaxInfo
	Currency    string
	BankDetails BankDetails
	Logo        string // data-URL image reference, empty when unset
}

// Subtotal sums the item amounts in one pass. An invoice with no items has a
// subtotal of zero.
func (inv *Invoice) Subtotal() float64 {
	var sum float64
	for _, it := range inv.Items {
		sum += it.Amount()
	}
	return sum
}

// TaxAmount applies the flat tax percentage to the subtotal.
func (inv *Invoice) TaxAmount() float64 {
	return inv.Subtotal() * inv.TaxInfo.TaxPercentage / 100
}

// Total returns subtotal plus tax. Recomputed on every call; values are full
// precision, rounding happens only when formatting for display.
func (inv *Invoice) Total() float64 {
	return inv.Subtotal() + inv.TaxAmount()
}

// AddItem appends a blank line with the next free item id.
func (inv *Invoice) AddItem() *Item {
	var maxID int64
	for _, it := range inv.Items {
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	inv.Items = append(inv.Items, Item{ID: maxID + 1, Quantity: 1})
	return &inv.Items[len(inv.Items)-1]
}

// RemoveItem deletes the line with the given id. Removing the last remaining
// item is refused; deleting an id that is not present is a no-op.
func (inv *Invoice) RemoveItem(id int64) error {
	if len(inv.Items) <= 1 {
		return ErrLastItem
	}
	for i, it := range inv.Items {
		if it.ID == id {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return nil
		}
	}
	return nil
}
