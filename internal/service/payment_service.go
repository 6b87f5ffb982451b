package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"roomshift/internal/cache"
	apperrors "roomshift/internal/errors"
	"roomshift/internal/gateway"
	"roomshift/internal/model"
	"roomshift/internal/repository"
)

const (
	logBatchSize     = 10
	logFlushInterval = time.Second

	// leaves room for the TXN-<millis>- prefix within maxKeyLen
	maxBookingIDLen = maxKeyLen - len("TXN-0000000000000-")
)

// EsewaInitiation is the redirect form the browser posts to eSewa.
type EsewaInitiation struct {
	TransactionID string
	PaymentURL    string
	Params        gateway.EsewaForm
}

// KhaltiInitiation configures the browser-side Khalti checkout widget.
type KhaltiInitiation struct {
	TransactionID string
	PublicKey     string
	// Amount is in paisa.
	Amount int64
}

// PaymentService relays payments between bookings and the eSewa/Khalti gateways.
type PaymentService interface {
	InitiateEsewa(ctx context.Context, bookingID string, amount decimal.Decimal) (*EsewaInitiation, error)
	ConfirmEsewa(ctx context.Context, pid, refID string) (*model.PaymentTransaction, error)
	FailEsewa(ctx context.Context, pid, refID string) (*model.PaymentTransaction, error)
	InitiateKhalti(ctx context.Context, bookingID string, amount decimal.Decimal) (*KhaltiInitiation, error)
	VerifyKhalti(ctx context.Context, token string, amount decimal.Decimal, transactionID string) (*model.PaymentTransaction, error)
	// Close stops the log worker after flushing queued entries.
	Close()
}

// PaymentDeps groups the collaborators of the payment service.
type PaymentDeps struct {
	Bookings     repository.BookingRepository
	Transactions repository.PaymentRepository
	Logs         repository.PaymentLogRepository
	Cache        *cache.Client
	Esewa        gateway.EsewaGateway
	Khalti       gateway.KhaltiGateway
	// CallbackBaseURL is the public origin eSewa redirects back to.
	CallbackBaseURL string
}

type paymentService struct {
	PaymentDeps
	now func() time.Time

	// Channel for async payment logging
	logChannel chan model.PaymentLog
	stop       chan struct{}
	done       chan struct{}
	closeOnce  sync.Once

	// mu orders channel sends against Close; closed is guarded by it
	mu     sync.RWMutex
	closed bool
}

// NewPaymentService creates a new payment service and starts its log worker.
func NewPaymentService(deps PaymentDeps) PaymentService {
	return newPaymentService(deps)
}

func newPaymentService(deps PaymentDeps) *paymentService {
	s := &paymentService{
		PaymentDeps: deps,
		now:         time.Now,
		logChannel:  make(chan model.PaymentLog, 100),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	// Start async log worker
	go s.logWorker()

	return s
}

// transactionID formats TXN-<epoch millis>-<booking id>.
func (s *paymentService) transactionID(bookingID string) string {
	return "TXN-" + strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + bookingID
}

// InitiateEsewa records the attempt, marks the booking pending and returns the redirect form.
func (s *paymentService) InitiateEsewa(ctx context.Context, bookingID string, amount decimal.Decimal) (*EsewaInitiation, error) {
	txn, err := s.initiate(ctx, model.PaymentMethodEsewa, bookingID, amount)
	if err != nil {
		return nil, err
	}

	successURL := s.CallbackBaseURL + "/api/payment/esewa/success"
	failureURL := s.CallbackBaseURL + "/api/payment/esewa/failure"
	return &EsewaInitiation{
		TransactionID: txn.TransactionID,
		PaymentURL:    s.Esewa.PaymentURL(),
		Params:        s.Esewa.Form(txn.TransactionID, amount, successURL, failureURL),
	}, nil
}

// InitiateKhalti records the attempt, marks the booking pending and returns the checkout config.
func (s *paymentService) InitiateKhalti(ctx context.Context, bookingID string, amount decimal.Decimal) (*KhaltiInitiation, error) {
	txn, err := s.initiate(ctx, model.PaymentMethodKhalti, bookingID, amount)
	if err != nil {
		return nil, err
	}

	return &KhaltiInitiation{
		TransactionID: txn.TransactionID,
		PublicKey:     s.Khalti.PublicKey(),
		Amount:        gateway.ToPaisa(amount),
	}, nil
}

// initiate does not check that the booking exists; updating a missing
// booking is a no-op and the gateway payload is still returned.
func (s *paymentService) initiate(ctx context.Context, method model.PaymentMethod, bookingID string, amount decimal.Decimal) (*model.PaymentTransaction, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" || amount.IsZero() {
		return nil, apperrors.ErrMissingFields
	}
	if amount.IsNegative() {
		return nil, apperrors.ErrInvalidAmount
	}
	if len(bookingID) > maxBookingIDLen {
		return nil, fmt.Errorf("%w: bookingId", apperrors.ErrFieldTooLong)
	}

	txn := &model.PaymentTransaction{
		TransactionID: s.transactionID(bookingID),
		BookingID:     bookingID,
		Gateway:       method,
		Amount:        amount,
		Status:        model.PaymentStatusPending,
	}
	// a same-millisecond retry for the booking yields the same id; the record already exists
	if err := s.Transactions.Create(ctx, txn); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return nil, fmt.Errorf("create payment transaction: %w", err)
	}

	if err := s.Bookings.UpdatePayment(ctx, bookingID, model.PaymentUpdate{
		Status:        model.PaymentStatusPending,
		Method:        method,
		TransactionID: txn.TransactionID,
	}); err != nil {
		return nil, fmt.Errorf("mark booking pending: %w", err)
	}

	s.invalidateHistory(ctx, bookingID)
	s.logPayment(txn, model.PaymentStatusPending, "initiated amount "+amount.String())
	return txn, nil
}

// ConfirmEsewa handles the success redirect. The payment is confirmed with
// eSewa before the booking is marked paid.
func (s *paymentService) ConfirmEsewa(ctx context.Context, pid, refID string) (*model.PaymentTransaction, error) {
	if strings.TrimSpace(refID) == "" {
		return nil, apperrors.ErrMissingFields
	}
	txn, err := s.lookup(ctx, pid, model.PaymentMethodEsewa)
	if err != nil {
		return nil, err
	}

	ok, err := s.Esewa.Verify(ctx, txn.TransactionID, refID, txn.Amount)
	if err != nil {
		s.logPayment(txn, txn.Status, err.Error())
		return nil, err
	}
	if !ok {
		s.logPayment(txn, txn.Status, "esewa did not confirm ref "+refID)
		return nil, apperrors.ErrPaymentVerificationFailed
	}

	if err := s.settle(ctx, txn, model.PaymentStatusPaid, refID, refID); err != nil {
		return nil, err
	}
	return txn, nil
}

// FailEsewa handles the failure redirect.
func (s *paymentService) FailEsewa(ctx context.Context, pid, refID string) (*model.PaymentTransaction, error) {
	txn, err := s.lookup(ctx, pid, model.PaymentMethodEsewa)
	if err != nil {
		return nil, err
	}
	if err := s.settle(ctx, txn, model.PaymentStatusFailed, refID, refID); err != nil {
		return nil, err
	}
	return txn, nil
}

// VerifyKhalti confirms a checkout token with Khalti. A failed verification
// leaves the booking untouched.
func (s *paymentService) VerifyKhalti(ctx context.Context, token string, amount decimal.Decimal, transactionID string) (*model.PaymentTransaction, error) {
	if strings.TrimSpace(token) == "" || amount.IsZero() {
		return nil, apperrors.ErrMissingFields
	}
	txn, err := s.lookup(ctx, transactionID, model.PaymentMethodKhalti)
	if err != nil {
		return nil, err
	}

	verification, err := s.Khalti.Verify(ctx, token, gateway.ToPaisa(amount))
	if err != nil {
		s.logPayment(txn, txn.Status, err.Error())
		return nil, err
	}

	if err := s.settle(ctx, txn, model.PaymentStatusPaid, "", verification.Idx); err != nil {
		return nil, err
	}
	return txn, nil
}

// lookup loads a transaction started through the given gateway. A record
// initiated through the other gateway is reported as not found.
func (s *paymentService) lookup(ctx context.Context, transactionID string, gw model.PaymentMethod) (*model.PaymentTransaction, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, apperrors.ErrMissingFields
	}
	txn, err := s.Transactions.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find payment transaction: %w", err)
	}
	if txn.Gateway != gw {
		return nil, apperrors.ErrTransactionNotFound
	}
	return txn, nil
}

// settle writes the final status onto the booking and the transaction.
// bookingTxnID replaces the booking's transaction id when non-empty.
func (s *paymentService) settle(ctx context.Context, txn *model.PaymentTransaction, status model.PaymentStatus, bookingTxnID, gatewayRef string) error {
	if err := s.Bookings.UpdatePayment(ctx, txn.BookingID, model.PaymentUpdate{
		Status:        status,
		TransactionID: bookingTxnID,
	}); err != nil {
		return fmt.Errorf("update booking payment: %w", err)
	}
	if err := s.Transactions.UpdateStatus(ctx, txn.TransactionID, status, gatewayRef); err != nil {
		return fmt.Errorf("update payment transaction: %w", err)
	}

	txn.Status = status
	if gatewayRef != "" {
		txn.GatewayRef = gatewayRef
	}
	s.invalidateHistory(ctx, txn.BookingID)
	s.logPayment(txn, status, gatewayRef)
	return nil
}

// invalidateHistory drops the cached history of the booking's owner.
func (s *paymentService) invalidateHistory(ctx context.Context, bookingID string) {
	if s.Cache == nil {
		return
	}
	booking, err := s.Bookings.FindByID(ctx, bookingID)
	if err != nil {
		return
	}
	invalidateBookingHistory(ctx, s.Cache, booking.UserID)
}

// logWorker processes payment logs asynchronously.
func (s *paymentService) logWorker() {
	defer close(s.done)

	batch := make([]model.PaymentLog, 0, logBatchSize)
	ticker := time.NewTicker(logFlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := s.Logs.CreateBatch(context.Background(), batch); err != nil {
			log.Printf("payment log flush: %v", err)
		}
		batch = make([]model.PaymentLog, 0, logBatchSize)
	}

	for {
		select {
		case entry := <-s.logChannel:
			batch = append(batch, entry)
			if len(batch) >= logBatchSize {
				flush()
			}
		case <-ticker.C:
			// Flush batch periodically
			flush()
		case <-s.stop:
			for {
				select {
				case entry := <-s.logChannel:
					batch = append(batch, entry)
				default:
					flush()
					return
				}
			}
		}
	}
}

// logPayment logs a payment event asynchronously.
func (s *paymentService) logPayment(txn *model.PaymentTransaction, status model.PaymentStatus, detail string) {
	entry := model.PaymentLog{
		TransactionID: txn.TransactionID,
		Gateway:       txn.Gateway,
		Status:        status,
		Detail:        detail,
		CreatedAt:     s.now(),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.writeLog(entry)
		return
	}

	// Send to async log channel (non-blocking)
	select {
	case s.logChannel <- entry:
	default:
		// Channel full, log synchronously as fallback
		s.writeLog(entry)
	}
}

func (s *paymentService) writeLog(entry model.PaymentLog) {
	if err := s.Logs.Create(context.Background(), &entry); err != nil {
		log.Printf("payment log write: %v", err)
	}
}

// Close stops the log worker and waits for the final flush.
func (s *paymentService) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.stop)
		s.mu.Unlock()
	})
	<-s.done
}
