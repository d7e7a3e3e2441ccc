package service

import (
	"fmt"

	"gorm.io/gorm"

	"bookdrive/internal/errors"
)

// notFound turns a missing row into errors.ErrNotFound naming the entity.
func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", entity, id, errors.ErrNotFound)
	}
	return err
}

// checkLength rejects optional text longer than max characters.
func checkLength(field string, value *string, max int) error {
	if value == nil {
		return nil
	}
	if err := validate.Var(*value, fmt.Sprintf("max=%d", max)); err != nil {
		return errors.NewValidationError(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return nil
}
