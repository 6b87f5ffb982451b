package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatusPending is the only status a booking is ever created with.
const BookingStatusPending = "Pending"

// PaymentStatus tracks where a booking's payment stands.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "Unpaid"
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// PaymentMethod names the gateway a booking is being paid through.
type PaymentMethod string

const (
	PaymentMethodEsewa  PaymentMethod = "eSewa"
	PaymentMethodKhalti PaymentMethod = "Khalti"
)

// Booking is a single requested move. Customer fields are a client-supplied
// snapshot and are not checked against the users table.
type Booking struct {
	ID                 string        `json:"id" gorm:"type:char(36);primaryKey" bson:"_id"`
	UserID             string        `json:"userId" gorm:"size:255;index" bson:"userId"`
	UserName           string        `json:"userName" gorm:"type:text" bson:"userName"`
	UserPhone          string        `json:"userPhone" gorm:"type:text" bson:"userPhone"`
	UserEmail          string        `json:"userEmail" gorm:"type:text" bson:"userEmail"`
	HouseSize          string        `json:"houseSize" gorm:"type:text" bson:"houseSize"`
	MoveDate           string        `json:"moveDate" gorm:"type:text" bson:"moveDate"`
	Price              string        `json:"price" gorm:"type:text" bson:"price"`
	PickupAddress      string        `json:"pickupAddress" gorm:"type:text;not null" bson:"pickupAddress"`
	DestinationAddress string        `json:"destinationAddress" gorm:"type:text;not null" bson:"destinationAddress"`
	Status             string        `json:"status" gorm:"size:32;default:'Pending'" bson:"status"`
	PaymentStatus      PaymentStatus `json:"paymentStatus" gorm:"size:16;default:'Unpaid'" bson:"paymentStatus"`
	PaymentMethod      PaymentMethod `json:"paymentMethod,omitempty" gorm:"size:16" bson:"paymentMethod,omitempty"`
	TransactionID      string        `json:"transactionId,omitempty" gorm:"size:255" bson:"transactionId,omitempty"`
	CreatedAt          time.Time     `json:"createdAt" gorm:"index" bson:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// MarshalJSON also emits the id as "_id", which the static site reads.
func (b Booking) MarshalJSON() ([]byte, error) {
	type alias Booking
	return json.Marshal(struct {
		MongoID string `json:"_id"`
		alias
	}{MongoID: b.ID, alias: alias(b)})
}

// PaymentUpdate is the set of payment fields a gateway handler writes onto a booking.
// Empty fields are left untouched.
type PaymentUpdate struct {
	Status        PaymentStatus
	Method        PaymentMethod
	TransactionID string
}
