package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered customer of the moving service.
type User struct {
	ID           string    `json:"id" gorm:"type:char(36);primaryKey" bson:"_id"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null" bson:"email"`
	PasswordHash string    `json:"-" gorm:"size:255;not null" bson:"password"` // Never expose in JSON
	Phone        string    `json:"phone,omitempty" gorm:"type:text" bson:"phone,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
