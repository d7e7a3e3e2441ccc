package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"bookdrive/internal/errors"
	"bookdrive/internal/model"
	"bookdrive/internal/repository"
)

// BookDetail is a book with its linked sponsors and drawings.
type BookDetail struct {
	model.Book
	Sponsors []model.Sponsor `json:"sponsors"`
	Drawings []model.Drawing `json:"drawings"`
}

// BookService handles the book catalog.
type BookService interface {
	CreateBook(ctx context.Context, book *model.Book) (*model.Book, error)
	GetBook(ctx context.Context, id uint) (*BookDetail, error)
	SetPublished(ctx context.Context, id uint, published bool) error
	AttachDrawing(ctx context.Context, bookID, drawingID uint) error
	DetachDrawing(ctx context.Context, bookID, drawingID uint) error
	DeleteBook(ctx context.Context, id uint) error
}

type bookService struct {
	store repository.Store
}

// NewBookService creates a new book service.
func NewBookService(store repository.Store) BookService {
	return &bookService{store: store}
}

func (s *bookService) CreateBook(ctx context.Context, book *model.Book) (*model.Book, error) {
	if err := checkLength("name", book.Name, nameMaxLen); err != nil {
		return nil, err
	}
	if err := s.store.Books().Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

func (s *bookService) GetBook(ctx context.Context, id uint) (*BookDetail, error) {
	book, err := s.store.Books().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "book", id)
	}

	sponsors, err := s.store.Books().ListSponsors(ctx, id)
	if err != nil {
		return nil, err
	}
	drawings, err := s.store.Books().ListDrawings(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BookDetail{Book: *book, Sponsors: sponsors, Drawings: drawings}, nil
}

func (s *bookService) SetPublished(ctx context.Context, id uint, published bool) error {
	if err := s.store.Books().SetPublished(ctx, id, published); err != nil {
		return notFound(err, "book", id)
	}
	return nil
}

func (s *bookService) AttachDrawing(ctx context.Context, bookID, drawingID uint) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Books().FindByID(ctx, bookID); err != nil {
			return notFound(err, "book", bookID)
		}
		if _, err := tx.Drawings().FindByID(ctx, drawingID); err != nil {
			return notFound(err, "drawing", drawingID)
		}
		return tx.Books().LinkDrawing(ctx, bookID, drawingID)
	})
}

func (s *bookService) DetachDrawing(ctx context.Context, bookID, drawingID uint) error {
	return s.store.Books().UnlinkDrawing(ctx, bookID, drawingID)
}

// DeleteBook removes a book and its links. Sponsored books cannot be deleted.
func (s *bookService) DeleteBook(ctx context.Context, id uint) error {
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Books().FindByID(ctx, id); err != nil {
			return notFound(err, "book", id)
		}

		refs, err := tx.SponsoredBooks().CountByBook(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("book %d has %d sponsorships: %w", id, refs, errors.ErrProtectedReference)
		}

		if err := tx.Books().DeleteLinks(ctx, id); err != nil {
			return err
		}
		return tx.Books().Delete(ctx, id)
	})
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errors.ErrProtectedReference
	}
	return err
}
