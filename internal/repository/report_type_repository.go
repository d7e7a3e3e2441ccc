package repository

import (
	"context"

	"gorm.io/gorm"

	"bookdrive/internal/model"
)

// ReportTypeRepository defines report type persistence operations.
type ReportTypeRepository interface {
	Create(ctx context.Context, rt *model.ReportType) error
	Update(ctx context.Context, rt *model.ReportType) error
	FindByID(ctx context.Context, id uint) (*model.ReportType, error)
	FindByLabel(ctx context.Context, label string) (*model.ReportType, error)
	List(ctx context.Context) ([]model.ReportType, error)
	Delete(ctx context.Context, id uint) error
}

type reportTypeRepository struct {
	db *gorm.DB
}

// NewReportTypeRepository creates a new report type repository.
func NewReportTypeRepository(db *gorm.DB) ReportTypeRepository {
	return &reportTypeRepository{db: db}
}

func (r *reportTypeRepository) Create(ctx context.Context, rt *model.ReportType) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *reportTypeRepository) FindByLabel(ctx context.Context, label string) (*model.ReportType, error) {
	var rt model.ReportType
	if err := r.db.WithContext(ctx).Where("report_type = ?", label).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *reportTypeRepository) List(ctx context.Context) ([]model.ReportType, error) {
	var rts []model.ReportType
	if err := r.db.WithContext(ctx).Order("report_type_id").Find(&rts).Error; err != nil {
		return nil, err
	}
	return rts, nil
}

func (r *reportTypeRepository) Update(ctx context.Context, rt *model.ReportType) error {
	return r.db.WithContext(ctx).Save(rt).Error
}

func (r *reportTypeRepository) FindByID(ctx context.Context, id uint) (*model.ReportType, error) {
	var rt model.ReportType
	if err := r.db.WithContext(ctx).First(&rt, id).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *reportTypeRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.ReportType{}, id)
}
