package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roomshift/internal/model"
)

// PaymentRepository defines payment transaction persistence operations.
type PaymentRepository interface {
	Create(ctx context.Context, txn *model.PaymentTransaction) error
	FindByID(ctx context.Context, transactionID string) (*model.PaymentTransaction, error)
	UpdateStatus(ctx context.Context, transactionID string, status model.PaymentStatus, gatewayRef string) error
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create stores a payment transaction record. A record with the same
// transaction id is overwritten, so repeated initiates within one
// millisecond leave the last attempt in place.
func (r *paymentRepository) Create(ctx context.Context, txn *model.PaymentTransaction) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(txn).Error
}

// FindByID finds a payment transaction by its transaction id.
func (r *paymentRepository) FindByID(ctx context.Context, transactionID string) (*model.PaymentTransaction, error) {
	var txn model.PaymentTransaction
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// UpdateStatus sets the status of a transaction and, when given, the gateway reference.
func (r *paymentRepository) UpdateStatus(ctx context.Context, transactionID string, status model.PaymentStatus, gatewayRef string) error {
	fields := map[string]interface{}{"status": string(status)}
	if gatewayRef != "" {
		fields["gateway_ref"] = gatewayRef
	}
	return r.db.WithContext(ctx).Model(&model.PaymentTransaction{}).
		Where("transaction_id = ?", transactionID).
		Updates(fields).Error
}

// PaymentLogRepository defines payment log persistence operations.
type PaymentLogRepository interface {
	Create(ctx context.Context, log *model.PaymentLog) error
	CreateBatch(ctx context.Context, logs []model.PaymentLog) error
}

type paymentLogRepository struct {
	db *gorm.DB
}

// NewPaymentLogRepository creates a new payment log repository.
func NewPaymentLogRepository(db *gorm.DB) PaymentLogRepository {
	return &paymentLogRepository{db: db}
}

// Create creates a new payment log entry.
func (r *paymentLogRepository) Create(ctx context.Context, log *model.PaymentLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// CreateBatch creates multiple payment log entries in a single statement.
func (r *paymentLogRepository) CreateBatch(ctx context.Context, logs []model.PaymentLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}
