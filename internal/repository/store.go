package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories so multi-table writes can share a transaction.
type Store interface {
	Users() UserRepository
	Sponsors() SponsorRepository
	NonProfits() NonProfitRepository
	Drawings() DrawingRepository
	Books() BookRepository
	SponsoredBooks() SponsoredBookRepository
	ReportTypes() ReportTypeRepository
	// WithTransaction executes fn with a Store bound to one database transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type store struct {
	db *gorm.DB
}

// NewStore creates a GORM-backed Store.
func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Users() UserRepository                   { return NewUserRepository(s.db) }
func (s *store) Sponsors() SponsorRepository             { return NewSponsorRepository(s.db) }
func (s *store) NonProfits() NonProfitRepository         { return NewNonProfitRepository(s.db) }
func (s *store) Drawings() DrawingRepository             { return NewDrawingRepository(s.db) }
func (s *store) Books() BookRepository                   { return NewBookRepository(s.db) }
func (s *store) SponsoredBooks() SponsoredBookRepository { return NewSponsoredBookRepository(s.db) }
func (s *store) ReportTypes() ReportTypeRepository       { return NewReportTypeRepository(s.db) }

// WithTransaction executes a function within a database transaction.
func (s *store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &store{db: tx})
	})
}
