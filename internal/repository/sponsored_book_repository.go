package repository

import (
	"context"

	"gorm.io/gorm"

	"bookdrive/internal/model"
)

// SponsoredBookRepository defines sponsorship persistence operations.
type SponsoredBookRepository interface {
	Create(ctx context.Context, sb *model.SponsoredBook) error
	FindByID(ctx context.Context, id uint) (*model.SponsoredBook, error)
	ListByBook(ctx context.Context, bookID uint) ([]model.SponsoredBook, error)
	CountBySponsor(ctx context.Context, sponsorID uint) (int64, error)
	CountByBook(ctx context.Context, bookID uint) (int64, error)
	CountByPair(ctx context.Context, sponsorID, bookID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type sponsoredBookRepository struct {
	db *gorm.DB
}

// NewSponsoredBookRepository creates a new sponsorship repository.
func NewSponsoredBookRepository(db *gorm.DB) SponsoredBookRepository {
	return &sponsoredBookRepository{db: db}
}

// Create creates a new sponsorship record.
func (r *sponsoredBookRepository) Create(ctx context.Context, sb *model.SponsoredBook) error {
	return r.db.WithContext(ctx).Create(sb).Error
}

// FindByID finds a sponsorship by ID.
func (r *sponsoredBookRepository) FindByID(ctx context.Context, id uint) (*model.SponsoredBook, error) {
	var sb model.SponsoredBook
	if err := r.db.WithContext(ctx).First(&sb, id).Error; err != nil {
		return nil, err
	}
	return &sb, nil
}

// ListByBook lists the sponsorships of a book, oldest first.
func (r *sponsoredBookRepository) ListByBook(ctx context.Context, bookID uint) ([]model.SponsoredBook, error) {
	var sbs []model.SponsoredBook
	if err := r.db.WithContext(ctx).Where("book_id = ?", bookID).Order("id").Find(&sbs).Error; err != nil {
		return nil, err
	}
	return sbs, nil
}

// CountBySponsor counts sponsorships referencing a sponsor.
func (r *sponsoredBookRepository) CountBySponsor(ctx context.Context, sponsorID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SponsoredBook{}).Where("sponsor_id = ?", sponsorID).Count(&n).Error
	return n, err
}

// CountByBook counts sponsorships referencing a book.
func (r *sponsoredBookRepository) CountByBook(ctx context.Context, bookID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SponsoredBook{}).Where("book_id = ?", bookID).Count(&n).Error
	return n, err
}

// CountByPair counts sponsorships of one book by one sponsor.
func (r *sponsoredBookRepository) CountByPair(ctx context.Context, sponsorID, bookID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SponsoredBook{}).
		Where("sponsor_id = ? AND book_id = ?", sponsorID, bookID).
		Count(&n).Error
	return n, err
}

// Delete deletes a sponsorship record.
func (r *sponsoredBookRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.SponsoredBook{}, id)
}
