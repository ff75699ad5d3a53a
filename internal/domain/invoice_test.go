package domain

import (
	"testing"
	"time"
)

func TestItemAmount(t *testing.T) {
	it := Item{Quantity: 3, UnitPrice: 25.50, Discount: 5}
	if got := it.Amount(); got != 71.5 {
		t.Fatalf("expected 71.5, got %v", got)
	}
}

func TestItemAmount_DiscountExceedsValue(t *testing.T) {
	// Oversized discounts go negative; no floor is applied.
	it := Item{Quantity: 1, UnitPrice: 10, Discount: 25}
	if got := it.Amount(); got != -15 {
		t.Fatalf("expected -15, got %v", got)
	}
}

func TestSubtotal_OrderInvariant(t *testing.T) {
	a := &Invoice{Items: []Item{
		{ID: 1, Quantity: 2, UnitPrice: 10},
		{ID: 2, Quantity: 1, UnitPrice: 99.99},
		{ID: 3, Quantity: 4, UnitPrice: 0.25, Discount: 0.5},
	}}
	b := &Invoice{Items: []Item{a.Items[2], a.Items[0], a.Items[1]}}

	if a.Subtotal() != b.Subtotal() {
		t.Fatalf("subtotal changed under reordering: %v vs %v", a.Subtotal(), b.Subtotal())
	}
}

func TestSubtotal_NoItems(t *testing.T) {
	inv := &Invoice{}
	if got := inv.Subtotal(); got != 0 {
		t.Fatalf("expected 0 subtotal for empty invoice, got %v", got)
	}
}

func TestTotals(t *testing.T) {
	inv := &Invoice{
		Items:   []Item{{ID: 1, Quantity: 1, UnitPrice: 100}},
		TaxInfo: TaxInfo{TaxName: "GST", TaxPercentage: 10},
	}

	if got := inv.Subtotal(); got != 100 {
		t.Fatalf("expected subtotal 100, got %v", got)
	}
	if got := inv.TaxAmount(); got != 10 {
		t.Fatalf("expected tax 10, got %v", got)
	}
	if got := inv.Total(); got != 110 {
		t.Fatalf("expected total 110, got %v", got)
	}
}

func TestTotal_ZeroTaxEqualsSubtotal(t *testing.T) {
	inv := &Invoice{Items: []Item{
		{ID: 1, Quantity: 3, UnitPrice: 7.77},
		{ID: 2, Quantity: 2, UnitPrice: 1.01, Discount: 0.02},
	}}
	if inv.Total() != inv.Subtotal() {
		t.Fatalf("with 0%% tax, total %v should equal subtotal %v", inv.Total(), inv.Subtotal())
	}
}

func TestAddItem_AssignsNextID(t *testing.T) {
	inv := &Invoice{Items: []Item{{ID: 1}, {ID: 5}}}
	it := inv.AddItem()
	if it.ID != 6 {
		t.Fatalf("expected new item id 6, got %d", it.ID)
	}
	if len(inv.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(inv.Items))
	}
}

func TestRemoveItem_RefusesLastItem(t *testing.T) {
	inv := &Invoice{Items: []Item{{ID: 1}}}
	if err := inv.RemoveItem(1); err != ErrLastItem {
		t.Fatalf("expected ErrLastItem, got %v", err)
	}
	if len(inv.Items) != 1 {
		t.Fatalf("last item must survive, got %d items", len(inv.Items))
	}
}

func TestRemoveItem_MissingIDIsNoop(t *testing.T) {
	inv := &Invoice{Items: []Item{{ID: 1}, {ID: 2}}}
	if err := inv.RemoveItem(99); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inv.Items) != 2 {
		t.Fatalf("expected items unchanged, got %d", len(inv.Items))
	}
}

func TestSnapshot_DeepCopiesItems(t *testing.T) {
	inv := &Invoice{
		Header: Header{InvoiceNumber: "007"},
		Items:  []Item{{ID: 1, Description: "Lawn Mowing", Quantity: 1, UnitPrice: 100}},
	}

	snap := Snapshot(inv, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))

	// Mutating the live invoice must not reach the snapshot.
	inv.Items[0].UnitPrice = 999
	if snap.Items[0].UnitPrice != 100 {
		t.Fatalf("snapshot shares item storage with the live invoice")
	}
}

func TestSnapshot_IDFromSaveTimeAndNumber(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	snap := Snapshot(&Invoice{Header: Header{InvoiceNumber: "023"}, Items: []Item{{ID: 1}}}, at)

	want := "1788091200000-023"
	if snap.ID != want {
		t.Fatalf("expected id %q, got %q", want, snap.ID)
	}
}

func TestRestore_IndependentOfSnapshot(t *testing.T) {
	snap := SavedInvoice{
		Header: Header{InvoiceNumber: "010"},
		Items:  []Item{{ID: 1, Quantity: 2, UnitPrice: 5}},
	}

	inv := snap.Restore()
	inv.Items[0].Quantity = 100
	if snap.Items[0].Quantity != 2 {
		t.Fatalf("restored invoice shares item storage with the snapshot")
	}
}

func TestSnapshotTotals_MatchLiveCalculator(t *testing.T) {
	inv := &Invoice{
		Items:   []Item{{ID: 1, Quantity: 2, UnitPrice: 49.99, Discount: 1.5}},
		TaxInfo: TaxInfo{TaxPercentage: 12.5},
	}
	snap := Snapshot(inv, time.Now())

	if snap.Subtotal() != inv.Subtotal() || snap.TaxAmount() != inv.TaxAmount() || snap.Total() != inv.Total() {
		t.Fatalf("snapshot totals diverge from live totals")
	}
}
