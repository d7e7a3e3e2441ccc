package repository

import (
	"context"

	"gorm.io/gorm"

	"bookdrive/internal/model"
)

// BookRepository defines book persistence operations, including the explicit
// book/sponsor and book/drawing join rows.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	FindByName(ctx context.Context, name string) (*model.Book, error)
	ListPublished(ctx context.Context) ([]model.Book, error)
	SetPublished(ctx context.Context, id uint, published bool) error
	IncrementSponsors(ctx context.Context, id uint) error
	DecrementSponsors(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error

	LinkSponsor(ctx context.Context, bookID, sponsorID uint) error
	UnlinkSponsor(ctx context.Context, bookID, sponsorID uint) error
	ListSponsors(ctx context.Context, bookID uint) ([]model.Sponsor, error)
	LinkDrawing(ctx context.Context, bookID, drawingID uint) error
	UnlinkDrawing(ctx context.Context, bookID, drawingID uint) error
	ListDrawings(ctx context.Context, bookID uint) ([]model.Drawing, error)
	DeleteLinks(ctx context.Context, bookID uint) error
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book.
func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// Update updates an existing book.
func (r *bookRepository) Update(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

// FindByID finds a book by ID.
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByName finds the first book with the given name.
func (r *bookRepository) FindByName(ctx context.Context, name string) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// ListPublished lists books flagged published.
func (r *bookRepository) ListPublished(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).Where("is_published = ?", true).Order("id").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// SetPublished flips the published flag.
func (r *bookRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	res := r.db.WithContext(ctx).Model(&model.Book{}).Where("id = ?", id).Update("is_published", published)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// mysql reports unchanged rows as unaffected
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Book{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementSponsors bumps current_sponsors in place.
func (r *bookRepository) IncrementSponsors(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Book{}).
		Where("id = ?", id).
		UpdateColumn("current_sponsors", gorm.Expr("COALESCE(current_sponsors, 0) + 1")).Error
}

// DecrementSponsors lowers current_sponsors in place, never below zero.
func (r *bookRepository) DecrementSponsors(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Book{}).
		Where("id = ?", id).
		UpdateColumn("current_sponsors", gorm.Expr("CASE WHEN current_sponsors > 0 THEN current_sponsors - 1 ELSE 0 END")).Error
}

// Delete deletes a book. The store rejects it while sponsorships reference the row.
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.Book{}, id)
}

// LinkSponsor adds the book/sponsor pair if it is not linked yet.
func (r *bookRepository) LinkSponsor(ctx context.Context, bookID, sponsorID uint) error {
	link := model.BookSponsor{BookID: bookID, SponsorID: sponsorID}
	return r.db.WithContext(ctx).
		Where("book_id = ? AND sponsor_id = ?", bookID, sponsorID).
		FirstOrCreate(&link).Error
}

// UnlinkSponsor removes the book/sponsor pair.
func (r *bookRepository) UnlinkSponsor(ctx context.Context, bookID, sponsorID uint) error {
	return r.db.WithContext(ctx).
		Where("book_id = ? AND sponsor_id = ?", bookID, sponsorID).
		Delete(&model.BookSponsor{}).Error
}

// ListSponsors returns the sponsors linked to a book.
func (r *bookRepository) ListSponsors(ctx context.Context, bookID uint) ([]model.Sponsor, error) {
	var sponsors []model.Sponsor
	err := r.db.WithContext(ctx).
		Joins("JOIN books_sponsors ON books_sponsors.sponsor_id = sponsors.id").
		Where("books_sponsors.book_id = ?", bookID).
		Order("sponsors.id").
		Find(&sponsors).Error
	if err != nil {
		return nil, err
	}
	return sponsors, nil
}

// LinkDrawing adds the book/drawing pair if it is not linked yet.
func (r *bookRepository) LinkDrawing(ctx context.Context, bookID, drawingID uint) error {
	link := model.BookDrawing{BookID: bookID, DrawingID: drawingID}
	return r.db.WithContext(ctx).
		Where("book_id = ? AND drawing_id = ?", bookID, drawingID).
		FirstOrCreate(&link).Error
}

// UnlinkDrawing removes the book/drawing pair.
func (r *bookRepository) UnlinkDrawing(ctx context.Context, bookID, drawingID uint) error {
	return r.db.WithContext(ctx).
		Where("book_id = ? AND drawing_id = ?", bookID, drawingID).
		Delete(&model.BookDrawing{}).Error
}

// ListDrawings returns the drawings linked to a book.
func (r *bookRepository) ListDrawings(ctx context.Context, bookID uint) ([]model.Drawing, error) {
	var drawings []model.Drawing
	err := r.db.WithContext(ctx).
		Joins("JOIN books_drawings ON books_drawings.drawing_id = drawings.id").
		Where("books_drawings.book_id = ?", bookID).
		Order("drawings.id").
		Find(&drawings).Error
	if err != nil {
		return nil, err
	}
	return drawings, nil
}

// DeleteLinks removes every join row of a book.
func (r *bookRepository) DeleteLinks(ctx context.Context, bookID uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("book_id = ?", bookID).Delete(&model.BookSponsor{}).Error; err != nil {
		return err
	}
	return db.Where("book_id = ?", bookID).Delete(&model.BookDrawing{}).Error
}
