package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentLog represents a log entry for a gateway interaction.
// Every initiate, callback and verification is logged regardless of outcome.
type PaymentLog struct {
	ID            string        `json:"id" gorm:"type:char(36);primaryKey" bson:"_id"`
	TransactionID string        `json:"transactionId" gorm:"size:255;not null;index" bson:"transactionId"`
	Gateway       PaymentMethod `json:"gateway" gorm:"size:16;not null" bson:"gateway"`
	Status        PaymentStatus `json:"status" gorm:"size:16;not null;index" bson:"status"`
	Detail        string        `json:"detail,omitempty" gorm:"type:text" bson:"detail,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (pl *PaymentLog) BeforeCreate(tx *gorm.DB) error {
	if pl.ID == "" {
		pl.ID = uuid.NewString()
	}
	return nil
}
