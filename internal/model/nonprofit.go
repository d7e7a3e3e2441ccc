package model

import "time"

// NonProfit is a partner organisation. It has no relationship to other entities.
type NonProfit struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       *string   `json:"name" gorm:"size:20"`
	About      *string   `json:"about" gorm:"type:text"`
	URL        *string   `json:"url" gorm:"column:url;type:text"`
	CreatedOn  time.Time `json:"created_on" gorm:"autoCreateTime"`
	ModifiedOn time.Time `json:"modified_on" gorm:"autoUpdateTime"`
}

func (NonProfit) TableName() string {
	return "nonprofits"
}
