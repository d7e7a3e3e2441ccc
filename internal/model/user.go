package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account identified by email. Password holds the hash, never the plaintext.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UID          uuid.UUID  `json:"uid" gorm:"column:uid;type:char(36);uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Password     string     `json:"-" gorm:"size:128;not null"` // Never expose in JSON
	FirstName    string     `json:"first_name" gorm:"size:50"`
	LastName     string     `json:"last_name" gorm:"size:50"`
	Role         Role       `json:"role" gorm:"type:smallint;default:3"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	DateJoined   time.Time  `json:"date_joined" gorm:"autoCreateTime"`
	IsActive     bool       `json:"is_active" gorm:"not null"`
	IsDeleted    bool       `json:"is_deleted" gorm:"not null;default:false"`
	CreatedDate  time.Time  `json:"created_date"`
	ModifiedDate time.Time  `json:"modified_date"`
	CreatedBy    string     `json:"created_by" gorm:"size:254"`
	ModifiedBy   string     `json:"modified_by" gorm:"size:254"`
}

// IsStaff reports whether the user may access staff tooling.
func (u *User) IsStaff() bool {
	return IsStaff(u.Role)
}

func (u *User) String() string {
	return u.Email
}
