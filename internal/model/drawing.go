package model

import "time"

// Drawing is a student's illustration, optionally paired with an AI-generated rendition.
type Drawing struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Subject       *string   `json:"subject" gorm:"size:100"`
	School        *string   `json:"school" gorm:"size:100"`
	CreatedBy     *string   `json:"created_by" gorm:"size:100"`
	CreativeURL   *string   `json:"creative_url" gorm:"column:creative_url;type:text"`
	AICreativeURL *string   `json:"ai_creative_url" gorm:"column:ai_creative_url;type:text"`
	UseAI         *bool     `json:"use_ai" gorm:"column:use_ai;default:true"`
	IsActive      *bool     `json:"is_active"`
	CreatedOn     time.Time `json:"created_on" gorm:"autoCreateTime"`
	ModifiedOn    time.Time `json:"modified_on" gorm:"autoUpdateTime"`
}

func (Drawing) TableName() string {
	return "drawings"
}
