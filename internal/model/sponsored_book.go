package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SponsoredBook records one sponsorship of a book. While it exists neither the
// sponsor nor the book can be deleted.
type SponsoredBook struct {
	ID         uint                `json:"id" gorm:"primaryKey"`
	SponsorID  *uint               `json:"sponsor_id" gorm:"index"`
	BookID     *uint               `json:"book_id" gorm:"index"`
	Amount     decimal.NullDecimal `json:"amount" gorm:"type:double precision"`
	CreatedOn  time.Time           `json:"created_on" gorm:"autoCreateTime"`
	ModifiedOn time.Time           `json:"modified_on" gorm:"autoUpdateTime"`

	// Relations
	Sponsor *Sponsor `json:"-" gorm:"foreignKey:SponsorID;constraint:OnDelete:RESTRICT"`
	Book    *Book    `json:"-" gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT"`
}

func (SponsoredBook) TableName() string {
	return "sponsor_books"
}
