package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roomshift/internal/cache"
	apperrors "roomshift/internal/errors"
	"roomshift/internal/model"
	"roomshift/internal/repository"
)

const (
	// width of the indexed id columns
	maxKeyLen = 255

	bookingHistoryTTL = time.Minute
	// Outlives every history entry so an expired version never resurrects one.
	bookingHistoryVersionTTL = 24 * time.Hour
)

// History entries are keyed by a per-user version. Invalidation bumps the
// version instead of deleting, so a list read that started before a write
// stores its result under a version nobody reads any more.
func bookingHistoryVersionKey(userID string) string {
	return fmt.Sprintf("bookings:user:%s:v", userID)
}

func bookingHistoryKey(userID string, version int64) string {
	return fmt.Sprintf("bookings:user:%s:v%d", userID, version)
}

func invalidateBookingHistory(ctx context.Context, c *cache.Client, userID string) {
	_ = c.Incr(ctx, bookingHistoryVersionKey(userID), bookingHistoryVersionTTL)
}

// CreateBookingInput carries the client-supplied booking form.
type CreateBookingInput struct {
	UserID             string
	UserName           string
	UserPhone          string
	UserEmail          string
	HouseSize          string
	MoveDate           string
	Price              string
	PickupAddress      string
	DestinationAddress string
}

// BookingService handles booking operations.
type BookingService interface {
	Create(ctx context.Context, in CreateBookingInput) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
}

type bookingService struct {
	repo  repository.BookingRepository
	cache *cache.Client
	now   func() time.Time
}

// NewBookingService creates a new booking service.
func NewBookingService(repo repository.BookingRepository, cache *cache.Client) BookingService {
	return &bookingService{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

// Create validates the route and stores a new pending, unpaid booking.
func (s *bookingService) Create(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	pickup := strings.TrimSpace(in.PickupAddress)
	destination := strings.TrimSpace(in.DestinationAddress)
	if pickup == "" || destination == "" {
		return nil, apperrors.ErrValidation
	}
	if len(in.UserID) > maxKeyLen {
		return nil, fmt.Errorf("%w: userId", apperrors.ErrFieldTooLong)
	}

	booking := &model.Booking{
		UserID:             in.UserID,
		UserName:           in.UserName,
		UserPhone:          in.UserPhone,
		UserEmail:          in.UserEmail,
		HouseSize:          in.HouseSize,
		MoveDate:           in.MoveDate,
		Price:              in.Price,
		PickupAddress:      pickup,
		DestinationAddress: destination,
		Status:             model.BookingStatusPending,
		PaymentStatus:      model.PaymentStatusUnpaid,
		CreatedAt:          s.now(),
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	invalidateBookingHistory(ctx, s.cache, booking.UserID)
	return booking, nil
}

// ListByUser returns the user's bookings, most recent first.
func (s *bookingService) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	// read the version before the repository so a concurrent write always moves past it
	key := bookingHistoryKey(userID, s.cache.Version(ctx, bookingHistoryVersionKey(userID)))

	var cached []model.Booking
	if s.cache.GetJSON(ctx, key, &cached) && cached != nil {
		return cached, nil
	}

	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}

	s.cache.SetJSON(ctx, key, bookings, bookingHistoryTTL)
	return bookings, nil
}
