package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"roomshift/internal/model"
)

// BookingRepository defines booking persistence operations.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	// UpdatePayment writes the non-empty fields of update onto the booking.
	// Updating a booking that does not exist is a silent no-op.
	UpdatePayment(ctx context.Context, id string, update model.PaymentUpdate) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create inserts a new booking.
func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// FindByID finds a booking by ID.
func (r *bookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// ListByUser returns the user's bookings, newest first.
func (r *bookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	bookings := make([]model.Booking, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdatePayment updates the payment fields of a booking.
func (r *bookingRepository) UpdatePayment(ctx context.Context, id string, update model.PaymentUpdate) error {
	fields := paymentFields(update)
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func paymentFields(update model.PaymentUpdate) map[string]interface{} {
	fields := make(map[string]interface{}, 3)
	if update.Status != "" {
		fields["payment_status"] = string(update.Status)
	}
	if update.Method != "" {
		fields["payment_method"] = string(update.Method)
	}
	if update.TransactionID != "" {
		fields["transaction_id"] = update.TransactionID
	}
	return fields
}
