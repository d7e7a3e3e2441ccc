// Package migration applies the ordered, linear history of schema change sets.
package migration

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrBrokenHistory is returned when the registered steps do not form one linear chain.
	ErrBrokenHistory = errors.New("migration steps do not form a linear history")
	// ErrInconsistentHistory is returned when recorded steps are not a prefix of the chain.
	ErrInconsistentHistory = errors.New("applied migrations are inconsistent with the registered history")
	// ErrDependencyNotApplied is returned when a step is applied before the step it depends on.
	ErrDependencyNotApplied = errors.New("migration dependency has not been applied")
	// ErrUnknownStep is returned for a step name that is not registered.
	ErrUnknownStep = errors.New("unknown migration")
	// ErrIrreversible is returned when rolling back a step without a Down function.
	ErrIrreversible = errors.New("migration cannot be reversed")
)

// Step is one versioned change set. Up and Down receive a transaction-bound DB.
type Step struct {
	Name      string // e.g. "0003_books_cover_url_drawings"
	DependsOn string // empty only for the first step
	Up        func(tx *gorm.DB) error
	Down      func(tx *gorm.DB) error
}

// Status represents whether a step has been applied.
type Status string

const (
	// StatusPending means the step has not been applied.
	StatusPending Status = "pending"
	// StatusApplied means the step has been applied.
	StatusApplied Status = "applied"
)

// StepStatus is one row of Runner.Status.
type StepStatus struct {
	Name      string
	DependsOn string
	Status    Status
	AppliedAt *time.Time
}

// SchemaMigration is the tracking row written for every applied step.
type SchemaMigration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:255;uniqueIndex;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

// ValidateChain checks that steps form a single linear history.
func ValidateChain(steps []Step) error {
	seen := make(map[string]bool, len(steps))
	for i, s := range steps {
		if s.Name == "" || s.Up == nil {
			return ErrBrokenHistory
		}
		if seen[s.Name] {
			return ErrBrokenHistory
		}
		seen[s.Name] = true

		if i == 0 {
			if s.DependsOn != "" {
				return ErrBrokenHistory
			}
			continue
		}
		if s.DependsOn != steps[i-1].Name {
			return ErrBrokenHistory
		}
	}
	return nil
}
