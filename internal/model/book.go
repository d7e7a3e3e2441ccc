package model

import "time"

// Book is a title that sponsors fund and drawings illustrate.
type Book struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            *string   `json:"name" gorm:"size:20"`
	About           *string   `json:"about" gorm:"type:text"`
	CoverURL        *string   `json:"cover_url" gorm:"column:cover_url;type:text"`
	URL             *string   `json:"url" gorm:"column:url;type:text"`
	CurrentSponsors int       `json:"current_sponsors" gorm:"default:0"`
	TotalSponsors   *int      `json:"total_sponsors" gorm:"default:1"`
	IsPublished     *bool     `json:"is_published"`
	CreatedOn       time.Time `json:"created_on" gorm:"autoCreateTime"`
	ModifiedOn      time.Time `json:"modified_on" gorm:"autoUpdateTime"`
}

func (Book) TableName() string {
	return "books"
}

// BookSponsor links a book to a sponsor. One row per pair.
type BookSponsor struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	BookID    uint `json:"book_id" gorm:"not null;uniqueIndex:idx_books_sponsors_pair"`
	SponsorID uint `json:"sponsor_id" gorm:"not null;uniqueIndex:idx_books_sponsors_pair;index"`

	// Relations
	Book    *Book    `json:"-" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Sponsor *Sponsor `json:"-" gorm:"foreignKey:SponsorID;constraint:OnDelete:CASCADE"`
}

func (BookSponsor) TableName() string {
	return "books_sponsors"
}

// BookDrawing links a book to a drawing. One row per pair.
type BookDrawing struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	BookID    uint `json:"book_id" gorm:"not null;uniqueIndex:idx_books_drawings_pair"`
	DrawingID uint `json:"drawing_id" gorm:"not null;uniqueIndex:idx_books_drawings_pair;index"`

	// Relations
	Book    *Book    `json:"-" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Drawing *Drawing `json:"-" gorm:"foreignKey:DrawingID;constraint:OnDelete:CASCADE"`
}

func (BookDrawing) TableName() string {
	return "books_drawings"
}
