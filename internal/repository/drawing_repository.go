package repository

import (
	"context"

	"gorm.io/gorm"

	"bookdrive/internal/model"
)

// DrawingRepository defines drawing persistence operations.
type DrawingRepository interface {
	Create(ctx context.Context, drawing *model.Drawing) error
	Update(ctx context.Context, drawing *model.Drawing) error
	FindByID(ctx context.Context, id uint) (*model.Drawing, error)
	FindByCreativeURL(ctx context.Context, url string) (*model.Drawing, error)
	ListActive(ctx context.Context) ([]model.Drawing, error)
	Delete(ctx context.Context, id uint) error
}

type drawingRepository struct {
	db *gorm.DB
}

// NewDrawingRepository creates a new drawing repository.
func NewDrawingRepository(db *gorm.DB) DrawingRepository {
	return &drawingRepository{db: db}
}

func (r *drawingRepository) Create(ctx context.Context, drawing *model.Drawing) error {
	return r.db.WithContext(ctx).Create(drawing).Error
}

func (r *drawingRepository) Update(ctx context.Context, drawing *model.Drawing) error {
	return r.db.WithContext(ctx).Save(drawing).Error
}

func (r *drawingRepository) FindByID(ctx context.Context, id uint) (*model.Drawing, error) {
	var drawing model.Drawing
	if err := r.db.WithContext(ctx).First(&drawing, id).Error; err != nil {
		return nil, err
	}
	return &drawing, nil
}

func (r *drawingRepository) FindByCreativeURL(ctx context.Context, url string) (*model.Drawing, error) {
	var drawing model.Drawing
	if err := r.db.WithContext(ctx).Where("creative_url = ?", url).Order("id").First(&drawing).Error; err != nil {
		return nil, err
	}
	return &drawing, nil
}

// ListActive lists drawings flagged active.
func (r *drawingRepository) ListActive(ctx context.Context) ([]model.Drawing, error) {
	var drawings []model.Drawing
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&drawings).Error; err != nil {
		return nil, err
	}
	return drawings, nil
}

func (r *drawingRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.Drawing{}, id)
}
