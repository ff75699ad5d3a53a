package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/andy/billcraft/internal/domain"
)

func savedInvoice(n int64) domain.SavedInvoice {
	inv := domain.Invoice{
		Header: domain.Header{InvoiceNumber: domain.FormatInvoiceNumber(n)},
		Items:  []domain.Item{{ID: 1, Quantity: 1, UnitPrice: float64(n)}},
	}
	return domain.Snapshot(&inv, time.Unix(1700000000+n, 0).UTC())
}

func TestPrependAndTrim_HeadFirst(t *testing.T) {
	var history []domain.SavedInvoice
	for n := int64(1); n <= 3; n++ {
		history = prependAndTrim(history, savedInvoice(n))
	}

	if len(history) != 3 {
		t.Fatalf("expected 3 records, got %d", len(history))
	}
	if history[0].Header.InvoiceNumber != "003" || history[2].Header.InvoiceNumber != "001" {
		t.Fatalf("expected most-recent-first order, got %s..%s",
			history[0].Header.InvoiceNumber, history[2].Header.InvoiceNumber)
	}
}

func TestPrependAndTrim_EvictsPastBound(t *testing.T) {
	var history []domain.SavedInvoice
	for n := int64(1); n <= 25; n++ {
		history = prependAndTrim(history, savedInvoice(n))
	}

	if len(history) != domain.MaxHistoryRecords {
		t.Fatalf("expected %d records, got %d", domain.MaxHistoryRecords, len(history))
	}

	// 21..25 evicted 1..5; head is 25, tail is 6.
	if got := history[0].Header.InvoiceNumber; got != "025" {
		t.Fatalf("expected head 025, got %s", got)
	}
	if got := history[len(history)-1].Header.InvoiceNumber; got != "006" {
		t.Fatalf("expected tail 006, got %s", got)
	}
	for _, inv := range history {
		for n := int64(1); n <= 5; n++ {
			if inv.Header.InvoiceNumber == domain.FormatInvoiceNumber(n) {
				t.Fatalf("invoice %03d should have been evicted", n)
			}
		}
	}
}

func TestPrependAndTrim_DoesNotMutateInput(t *testing.T) {
	history := []domain.SavedInvoice{savedInvoice(1)}
	_ = prependAndTrim(history, savedInvoice(2))
	if history[0].Header.InvoiceNumber != "001" {
		t.Fatalf("input slice was mutated")
	}
}

func TestRemoveByID(t *testing.T) {
	history := []domain.SavedInvoice{savedInvoice(1), savedInvoice(2), savedInvoice(3)}

	out := removeByID(history, history[1].ID)
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out[0].ID != history[0].ID || out[1].ID != history[2].ID {
		t.Fatalf("wrong record removed")
	}
}

func TestRemoveByID_AbsentIsNoop(t *testing.T) {
	history := []domain.SavedInvoice{savedInvoice(1), savedInvoice(2)}
	out := removeByID(history, "no-such-id")
	if len(out) != 2 {
		t.Fatalf("expected collection unchanged, got %d records", len(out))
	}
}

func TestDecodeHistory_CorruptPayload(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte(""),
		[]byte("{not json"),
		[]byte(`{"an":"object","not":"an array"}`),
		[]byte("null"),
	}
	for _, raw := range cases {
		got := decodeHistory(raw)
		if got == nil || len(got) != 0 {
			t.Errorf("decodeHistory(%q) = %v, want empty history", raw, got)
		}
	}
}

func TestDecodeHistory_RoundTrip(t *testing.T) {
	history := []domain.SavedInvoice{savedInvoice(7)}
	raw := []byte(fmt.Sprintf(
		`[{"id":%q,"savedAt":%q,"invoiceHeader":{"invoiceNumber":"007","issueDate":"","dueDate":"","paymentMethod":"","isTaxInvoice":false},"seller":{},"client":{},"items":[{"id":1,"description":"","quantity":1,"unitPrice":7,"discount":0}],"taxInfo":{},"currency":"","bankDetails":{},"logo":null}]`,
		history[0].ID, history[0].SavedAt.Format(time.RFC3339),
	))

	got := decodeHistory(raw)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].ID != history[0].ID {
		t.Fatalf("expected id %s, got %s", history[0].ID, got[0].ID)
	}
	if got[0].Items[0].UnitPrice != 7 {
		t.Fatalf("expected unit price 7, got %v", got[0].Items[0].UnitPrice)
	}
}
