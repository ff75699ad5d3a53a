package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andy/billcraft/internal/config"
	"github.com/andy/billcraft/internal/domain"
	"github.com/andy/billcraft/internal/repository"
)

var (
	// ErrHistorySaveFailed means the draft was not persisted. The working
	// invoice is untouched and the sequence was not advanced; the UI shows a
	// transient notice and editing continues.
	ErrHistorySaveFailed = errors.New("draft was not saved to history")

	ErrInvoiceNotFound = errors.New("invoice not found in history")
)

// InvoiceService manages the working invoice lifecycle: fresh drafts, saving
// snapshots to history, loading them back, and the number sequence.
type InvoiceService interface {
	// NewDraft builds a fresh invoice from config defaults with the header
	// number pre-populated from the sequence (without consuming it).
	NewDraft(ctx context.Context) (*domain.Invoice, error)

	// SaveDraft snapshots the invoice into history and advances the sequence.
	// On success the invoice's header number is reset to the new next number.
	SaveDraft(ctx context.Context, inv *domain.Invoice) (*domain.SavedInvoice, error)

	// SaveSnapshot persists an already-taken snapshot and advances the
	// sequence, returning the new next display number. It never touches a
	// live invoice, so callers may run it off the UI goroutine and apply the
	// header rollover themselves.
	SaveSnapshot(ctx context.Context, snap domain.SavedInvoice) (string, error)

	// LoadDraft rebuilds a working invoice from a saved record. The sequence
	// is not touched.
	LoadDraft(ctx context.Context, id string) (*domain.Invoice, error)

	// History returns saved drafts, most recent first.
	History(ctx context.Context) ([]domain.SavedInvoice, error)

	// DeleteDraft removes a saved record; absent ids are a no-op.
	DeleteDraft(ctx context.Context, id string) error

	// ClearHistory empties the saved history.
	ClearHistory(ctx context.Context) error

	// PeekNumber returns the display form of the next invoice number.
	PeekNumber(ctx context.Context) (string, error)
}

type invoiceService struct {
	historyRepo  repository.HistoryRepository
	sequenceRepo repository.SequenceRepository
	cfg          *config.Config
	now          func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	historyRepo repository.HistoryRepository,
	sequenceRepo repository.SequenceRepository,
	cfg *config.Config,
) InvoiceService {
	return &invoiceService{
		historyRepo:  historyRepo,
		sequenceRepo: sequenceRepo,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *invoiceService) NewDraft(ctx context.Context) (*domain.Invoice, error) {
	next, err := s.sequenceRepo.Peek(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to peek invoice number: %w", err)
	}

	issue := s.now()
	due := issue.AddDate(0, 0, s.cfg.Invoice.DueDays)

	inv := &domain.Invoice{
		Header: domain.Header{
			InvoiceNumber: domain.FormatInvoiceNumber(next),
			IssueDate:     issue.Format("2006-01-02"),
			DueDate:       due.Format("2006-01-02"),
			PaymentMethod: s.cfg.Invoice.PaymentMethod,
			IsTaxInvoice:  s.cfg.Invoice.TaxInvoice,
		},
		Seller: domain.Seller{
			BusinessName:     s.cfg.Seller.BusinessName,
			Street:           s.cfg.Seller.Street,
			City:             s.cfg.Seller.City,
			State:            s.cfg.Seller.State,
			Postcode:         s.cfg.Seller.Postcode,
			Country:          s.cfg.Seller.Country,
			Phone:            s.cfg.Seller.Phone,
			Email:            s.cfg.Seller.Email,
			ABN:              s.cfg.Seller.ABN,
			AuthorizedPerson: s.cfg.Seller.AuthorizedPerson,
		},
		TaxInfo: domain.TaxInfo{
			TaxName:       s.cfg.Invoice.TaxName,
			TaxPercentage: s.cfg.Invoice.TaxPercentage,
		},
		Currency: s.cfg.Invoice.Currency,
		BankDetails: domain.BankDetails{
			AccountName:   s.cfg.Bank.AccountName,
			AccountNumber: s.cfg.Bank.AccountNumber,
			BSB:           s.cfg.Bank.BSB,
			BankName:      s.cfg.Bank.BankName,
			PaymentNotes:  s.cfg.Bank.PaymentNotes,
		},
	}
	inv.AddItem()
	return inv, nil
}

func (s *invoiceService) SaveDraft(ctx context.Context, inv *domain.Invoice) (*domain.SavedInvoice, error) {
	snap := domain.Snapshot(inv, s.now())

	next, err := s.SaveSnapshot(ctx, snap)
	if err != nil {
		return nil, err
	}

	// The working document rolls over to the next number.
	inv.Header.InvoiceNumber = next
	return &snap, nil
}

func (s *invoiceService) SaveSnapshot(ctx context.Context, snap domain.SavedInvoice) (string, error) {
	// Persist first; the sequence only advances for drafts that actually
	// reached the store.
	if err := s.historyRepo.Save(ctx, snap); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHistorySaveFailed, err)
	}

	if _, err := s.sequenceRepo.Advance(ctx); err != nil {
		return "", fmt.Errorf("failed to advance invoice number: %w", err)
	}

	next, err := s.sequenceRepo.Peek(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to peek invoice number: %w", err)
	}
	return domain.FormatInvoiceNumber(next), nil
}

func (s *invoiceService) LoadDraft(ctx context.Context, id string) (*domain.Invoice, error) {
	saved, err := s.historyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, ErrInvoiceNotFound
	}
	return saved.Restore(), nil
}

func (s *invoiceService) History(ctx context.Context) ([]domain.SavedInvoice, error) {
	return s.historyRepo.Load(ctx)
}

func (s *invoiceService) DeleteDraft(ctx context.Context, id string) error {
	return s.historyRepo.DeleteByID(ctx, id)
}

func (s *invoiceService) ClearHistory(ctx context.Context) error {
	return s.historyRepo.Clear(ctx)
}

func (s *invoiceService) PeekNumber(ctx context.Context) (string, error) {
	next, err := s.sequenceRepo.Peek(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to peek invoice number: %w", err)
	}
	return domain.FormatInvoiceNumber(next), nil
}
