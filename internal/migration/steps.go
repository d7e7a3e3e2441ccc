package migration

import (
	"time"

	"gorm.io/gorm"

	"bookdrive/internal/model"
)

// History is the registered, ordered list of schema change sets.
var History = []Step{
	{
		Name: "0001_initial",
		Up:   initialUp,
		Down: initialDown,
	},
	{
		Name:      "0002_sponsor_books",
		DependsOn: "0001_initial",
		Up: func(tx *gorm.DB) error {
			return createMissing(tx, &model.SponsoredBook{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&model.SponsoredBook{})
		},
	},
	{
		Name:      "0003_books_cover_url_drawings",
		DependsOn: "0002_sponsor_books",
		Up:        coverURLDrawingsUp,
		Down:      coverURLDrawingsDown,
	},
}

// bookV1 is the books table as first created, before cover_url existed.
type bookV1 struct {
	ID              uint    `gorm:"primaryKey"`
	Name            *string `gorm:"size:20"`
	About           *string `gorm:"type:text"`
	URL             *string `gorm:"column:url;type:text"`
	CurrentSponsors int     `gorm:"default:0"`
	TotalSponsors   *int    `gorm:"default:1"`
	IsPublished     *bool
	CreatedOn       time.Time `gorm:"autoCreateTime"`
	ModifiedOn      time.Time `gorm:"autoUpdateTime"`
}

func (bookV1) TableName() string {
	return "books"
}

// bookSponsorV1 points the link table at the frozen books shape.
type bookSponsorV1 struct {
	ID        uint `gorm:"primaryKey"`
	BookID    uint `gorm:"not null;uniqueIndex:idx_books_sponsors_pair"`
	SponsorID uint `gorm:"not null;uniqueIndex:idx_books_sponsors_pair;index"`

	Book    *bookV1        `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Sponsor *model.Sponsor `gorm:"foreignKey:SponsorID;constraint:OnDelete:CASCADE"`
}

func (bookSponsorV1) TableName() string {
	return "books_sponsors"
}

func initialUp(tx *gorm.DB) error {
	return createMissing(tx,
		&model.User{},
		&model.ReportType{},
		&model.Drawing{},
		&model.NonProfit{},
		&model.Sponsor{},
		&bookV1{},
		&bookSponsorV1{},
	)
}

func initialDown(tx *gorm.DB) error {
	// dependents first
	tables := []string{"books_sponsors", "books", "sponsors", "nonprofits", "drawings", "report_type", "users"}
	for _, table := range tables {
		if err := tx.Migrator().DropTable(table); err != nil {
			return err
		}
	}
	return nil
}

func coverURLDrawingsUp(tx *gorm.DB) error {
	m := tx.Migrator()
	if !m.HasColumn(&model.Book{}, "CoverURL") {
		if err := m.AddColumn(&model.Book{}, "CoverURL"); err != nil {
			return err
		}
	}
	return createMissing(tx, &model.BookDrawing{})
}

func coverURLDrawingsDown(tx *gorm.DB) error {
	m := tx.Migrator()
	if err := m.DropTable(&model.BookDrawing{}); err != nil {
		return err
	}
	if !m.HasColumn(&model.Book{}, "CoverURL") {
		return nil
	}
	// gorm's sqlite DropColumn rebuilds the table, and dropping the old books
	// table fires the cascades and restrictions that reference it
	if tx.Dialector.Name() == "sqlite" {
		return tx.Exec("ALTER TABLE books DROP COLUMN cover_url").Error
	}
	return m.DropColumn(&model.Book{}, "CoverURL")
}

// createMissing creates each table that does not exist yet, in order.
func createMissing(tx *gorm.DB, models ...interface{}) error {
	m := tx.Migrator()
	for _, mdl := range models {
		if m.HasTable(mdl) {
			continue
		}
		if err := m.CreateTable(mdl); err != nil {
			return err
		}
	}
	return nil
}
