package repository

import (
	"context"

	"gorm.io/gorm"
)

// deleteByID removes one row and reports gorm.ErrRecordNotFound when nothing matched.
func deleteByID(ctx context.Context, db *gorm.DB, value interface{}, id uint) error {
	res := db.WithContext(ctx).Delete(value, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
