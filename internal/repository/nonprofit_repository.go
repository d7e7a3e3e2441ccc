package repository

import (
	"context"

	"gorm.io/gorm"

	"bookdrive/internal/model"
)

// NonProfitRepository defines nonprofit persistence operations.
type NonProfitRepository interface {
	Create(ctx context.Context, np *model.NonProfit) error
	Update(ctx context.Context, np *model.NonProfit) error
	FindByID(ctx context.Context, id uint) (*model.NonProfit, error)
	FindByName(ctx context.Context, name string) (*model.NonProfit, error)
	List(ctx context.Context) ([]model.NonProfit, error)
	Delete(ctx context.Context, id uint) error
}

type nonProfitRepository struct {
	db *gorm.DB
}

// NewNonProfitRepository creates a new nonprofit repository.
func NewNonProfitRepository(db *gorm.DB) NonProfitRepository {
	return &nonProfitRepository{db: db}
}

func (r *nonProfitRepository) Create(ctx context.Context, np *model.NonProfit) error {
	return r.db.WithContext(ctx).Create(np).Error
}

func (r *nonProfitRepository) Update(ctx context.Context, np *model.NonProfit) error {
	return r.db.WithContext(ctx).Save(np).Error
}

func (r *nonProfitRepository) FindByID(ctx context.Context, id uint) (*model.NonProfit, error) {
	var np model.NonProfit
	if err := r.db.WithContext(ctx).First(&np, id).Error; err != nil {
		return nil, err
	}
	return &np, nil
}

func (r *nonProfitRepository) FindByName(ctx context.Context, name string) (*model.NonProfit, error) {
	var np model.NonProfit
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&np).Error; err != nil {
		return nil, err
	}
	return &np, nil
}

func (r *nonProfitRepository) List(ctx context.Context) ([]model.NonProfit, error) {
	var nps []model.NonProfit
	if err := r.db.WithContext(ctx).Order("id").Find(&nps).Error; err != nil {
		return nil, err
	}
	return nps, nil
}

func (r *nonProfitRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.NonProfit{}, id)
}
