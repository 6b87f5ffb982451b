package handler_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"roomshift/internal/model"
	"roomshift/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password, phone string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

// MockBookingService is a mock implementation of service.BookingService.
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, in service.CreateBookingInput) (*model.Booking, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

// MockPaymentService is a mock implementation of service.PaymentService.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) InitiateEsewa(ctx context.Context, bookingID string, amount decimal.Decimal) (*service.EsewaInitiation, error) {
	args := m.Called(ctx, bookingID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EsewaInitiation), args.Error(1)
}

func (m *MockPaymentService) ConfirmEsewa(ctx context.Context, pid, refID string) (*model.PaymentTransaction, error) {
	args := m.Called(ctx, pid, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentTransaction), args.Error(1)
}

func (m *MockPaymentService) FailEsewa(ctx context.Context, pid, refID string) (*model.PaymentTransaction, error) {
	args := m.Called(ctx, pid, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentTransaction), args.Error(1)
}

func (m *MockPaymentService) InitiateKhalti(ctx context.Context, bookingID string, amount decimal.Decimal) (*service.KhaltiInitiation, error) {
	args := m.Called(ctx, bookingID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.KhaltiInitiation), args.Error(1)
}

func (m *MockPaymentService) VerifyKhalti(ctx context.Context, token string, amount decimal.Decimal, transactionID string) (*model.PaymentTransaction, error) {
	args := m.Called(ctx, token, amount, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentTransaction), args.Error(1)
}

func (m *MockPaymentService) Close() {}
