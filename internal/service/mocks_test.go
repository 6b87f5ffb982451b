package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"roomshift/internal/gateway"
	"roomshift/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdatePayment(ctx context.Context, id string, update model.PaymentUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, txn *model.PaymentTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, transactionID string) (*model.PaymentTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentTransaction), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, transactionID string, status model.PaymentStatus, gatewayRef string) error {
	args := m.Called(ctx, transactionID, status, gatewayRef)
	return args.Error(0)
}

// MockPaymentLogRepository is a mock implementation of PaymentLogRepository.
type MockPaymentLogRepository struct {
	mock.Mock
}

func (m *MockPaymentLogRepository) Create(ctx context.Context, log *model.PaymentLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockPaymentLogRepository) CreateBatch(ctx context.Context, logs []model.PaymentLog) error {
	args := m.Called(ctx, logs)
	return args.Error(0)
}

// MockEsewa is a mock implementation of gateway.EsewaGateway.
type MockEsewa struct {
	mock.Mock
}

func (m *MockEsewa) PaymentURL() string {
	return m.Called().String(0)
}

func (m *MockEsewa) Form(pid string, amount decimal.Decimal, successURL, failureURL string) gateway.EsewaForm {
	args := m.Called(pid, amount, successURL, failureURL)
	return args.Get(0).(gateway.EsewaForm)
}

func (m *MockEsewa) Verify(ctx context.Context, pid, refID string, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, pid, refID, amount)
	return args.Bool(0), args.Error(1)
}

// MockKhalti is a mock implementation of gateway.KhaltiGateway.
type MockKhalti struct {
	mock.Mock
}

func (m *MockKhalti) PublicKey() string {
	return m.Called().String(0)
}

func (m *MockKhalti) Verify(ctx context.Context, token string, paisa int64) (*gateway.KhaltiVerification, error) {
	args := m.Called(ctx, token, paisa)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.KhaltiVerification), args.Error(1)
}
