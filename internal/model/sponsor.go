package model

import "time"

// Sponsor funds books. UserID optionally links the sponsor to the account managing it.
type Sponsor struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       *string   `json:"name" gorm:"size:20"`
	About      *string   `json:"about" gorm:"type:text"`
	Logo       *string   `json:"logo" gorm:"type:text"`
	UserID     *uint     `json:"user_id" gorm:"index"`
	CreatedOn  time.Time `json:"created_on" gorm:"autoCreateTime"`
	ModifiedOn time.Time `json:"modified_on" gorm:"autoUpdateTime"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Sponsor) TableName() string {
	return "sponsors"
}
