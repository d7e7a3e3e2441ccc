package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bookdrive/internal/errors"
	"bookdrive/internal/model"
	"bookdrive/internal/repository"
)

const nameMaxLen = 20

// SponsorService handles sponsors and their sponsorships of books.
type SponsorService interface {
	CreateSponsor(ctx context.Context, sponsor *model.Sponsor) (*model.Sponsor, error)
	GetSponsor(ctx context.Context, id uint) (*model.Sponsor, error)
	DeleteSponsor(ctx context.Context, id uint) error
	SponsorBook(ctx context.Context, sponsorID, bookID uint, amount decimal.Decimal) (*model.SponsoredBook, error)
	WithdrawSponsorship(ctx context.Context, id uint) error
	ListSponsorships(ctx context.Context, bookID uint) ([]model.SponsoredBook, error)
}

type sponsorService struct {
	store repository.Store
}

// NewSponsorService creates a new sponsor service.
func NewSponsorService(store repository.Store) SponsorService {
	return &sponsorService{store: store}
}

func (s *sponsorService) CreateSponsor(ctx context.Context, sponsor *model.Sponsor) (*model.Sponsor, error) {
	if err := checkLength("name", sponsor.Name, nameMaxLen); err != nil {
		return nil, err
	}

	if sponsor.UserID != nil {
		if _, err := s.store.Users().FindByID(ctx, *sponsor.UserID); err != nil {
			return nil, notFound(err, "user", *sponsor.UserID)
		}
	}

	if err := s.store.Sponsors().Create(ctx, sponsor); err != nil {
		return nil, fmt.Errorf("create sponsor: %w", err)
	}
	return sponsor, nil
}

func (s *sponsorService) GetSponsor(ctx context.Context, id uint) (*model.Sponsor, error) {
	sponsor, err := s.store.Sponsors().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "sponsor", id)
	}
	return sponsor, nil
}

// DeleteSponsor removes a sponsor that no sponsorship references.
func (s *sponsorService) DeleteSponsor(ctx context.Context, id uint) error {
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Sponsors().FindByID(ctx, id); err != nil {
			return notFound(err, "sponsor", id)
		}

		refs, err := tx.SponsoredBooks().CountBySponsor(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("sponsor %d has %d sponsorships: %w", id, refs, errors.ErrProtectedReference)
		}

		return tx.Sponsors().Delete(ctx, id)
	})
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errors.ErrProtectedReference
	}
	return err
}

// SponsorBook records a sponsorship, links the pair and bumps the book's sponsor count.
func (s *sponsorService) SponsorBook(ctx context.Context, sponsorID, bookID uint, amount decimal.Decimal) (*model.SponsoredBook, error) {
	if amount.IsNegative() {
		return nil, errors.NewValidationError("amount", "must not be negative")
	}

	var record *model.SponsoredBook
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Sponsors().FindByID(ctx, sponsorID); err != nil {
			return notFound(err, "sponsor", sponsorID)
		}
		if _, err := tx.Books().FindByID(ctx, bookID); err != nil {
			return notFound(err, "book", bookID)
		}

		record = &model.SponsoredBook{
			SponsorID: model.Ptr(sponsorID),
			BookID:    model.Ptr(bookID),
			Amount:    decimal.NewNullDecimal(amount),
		}
		if err := tx.SponsoredBooks().Create(ctx, record); err != nil {
			return fmt.Errorf("create sponsorship: %w", err)
		}
		if err := tx.Books().LinkSponsor(ctx, bookID, sponsorID); err != nil {
			return fmt.Errorf("link sponsor: %w", err)
		}
		return tx.Books().IncrementSponsors(ctx, bookID)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// WithdrawSponsorship deletes a sponsorship. The pair stays linked while another
// sponsorship of the same pair remains.
func (s *sponsorService) WithdrawSponsorship(ctx context.Context, id uint) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		record, err := tx.SponsoredBooks().FindByID(ctx, id)
		if err != nil {
			return notFound(err, "sponsorship", id)
		}
		if err := tx.SponsoredBooks().Delete(ctx, id); err != nil {
			return err
		}
		if record.BookID == nil {
			return nil
		}

		if err := tx.Books().DecrementSponsors(ctx, *record.BookID); err != nil {
			return err
		}
		if record.SponsorID == nil {
			return nil
		}

		left, err := tx.SponsoredBooks().CountByPair(ctx, *record.SponsorID, *record.BookID)
		if err != nil {
			return err
		}
		if left == 0 {
			return tx.Books().UnlinkSponsor(ctx, *record.BookID, *record.SponsorID)
		}
		return nil
	})
}

func (s *sponsorService) ListSponsorships(ctx context.Context, bookID uint) ([]model.SponsoredBook, error) {
	return s.store.SponsoredBooks().ListByBook(ctx, bookID)
}
