package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTransaction records one payment attempt against a booking. It is
// written when a payment is initiated and looked up by TransactionID when
// the gateway reports back, so the booking id never has to be parsed out of
// the formatted transaction id.
type PaymentTransaction struct {
	TransactionID string          `json:"transactionId" gorm:"size:255;primaryKey"`
	BookingID     string          `json:"bookingId" gorm:"size:255;not null;index"`
	Gateway       PaymentMethod   `json:"gateway" gorm:"size:16;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Status        PaymentStatus   `json:"status" gorm:"size:16;not null;default:'Pending';index"`
	GatewayRef    string          `json:"gatewayRef,omitempty" gorm:"type:text"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
