package repository

import (
	"context"

	"gorm.io/gorm"

	"bookdrive/internal/model"
)

// SponsorRepository defines sponsor persistence operations.
type SponsorRepository interface {
	Create(ctx context.Context, sponsor *model.Sponsor) error
	Update(ctx context.Context, sponsor *model.Sponsor) error
	FindByID(ctx context.Context, id uint) (*model.Sponsor, error)
	FindByName(ctx context.Context, name string) (*model.Sponsor, error)
	FindByUserID(ctx context.Context, userID uint) ([]model.Sponsor, error)
	List(ctx context.Context) ([]model.Sponsor, error)
	Delete(ctx context.Context, id uint) error
}

type sponsorRepository struct {
	db *gorm.DB
}

// NewSponsorRepository creates a new sponsor repository.
func NewSponsorRepository(db *gorm.DB) SponsorRepository {
	return &sponsorRepository{db: db}
}

// Create creates a new sponsor.
func (r *sponsorRepository) Create(ctx context.Context, sponsor *model.Sponsor) error {
	return r.db.WithContext(ctx).Create(sponsor).Error
}

// Update updates an existing sponsor.
func (r *sponsorRepository) Update(ctx context.Context, sponsor *model.Sponsor) error {
	return r.db.WithContext(ctx).Save(sponsor).Error
}

// FindByID finds a sponsor by ID.
func (r *sponsorRepository) FindByID(ctx context.Context, id uint) (*model.Sponsor, error) {
	var sponsor model.Sponsor
	if err := r.db.WithContext(ctx).First(&sponsor, id).Error; err != nil {
		return nil, err
	}
	return &sponsor, nil
}

// FindByName finds the first sponsor with the given name.
func (r *sponsorRepository) FindByName(ctx context.Context, name string) (*model.Sponsor, error) {
	var sponsor model.Sponsor
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&sponsor).Error; err != nil {
		return nil, err
	}
	return &sponsor, nil
}

// FindByUserID lists the sponsors owned by a user.
func (r *sponsorRepository) FindByUserID(ctx context.Context, userID uint) ([]model.Sponsor, error) {
	var sponsors []model.Sponsor
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&sponsors).Error; err != nil {
		return nil, err
	}
	return sponsors, nil
}

// List lists all sponsors.
func (r *sponsorRepository) List(ctx context.Context) ([]model.Sponsor, error) {
	var sponsors []model.Sponsor
	if err := r.db.WithContext(ctx).Order("id").Find(&sponsors).Error; err != nil {
		return nil, err
	}
	return sponsors, nil
}

// Delete deletes a sponsor. The store rejects it while sponsorships reference the row.
func (r *sponsorRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.Sponsor{}, id)
}
