package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomshift/internal/db"
	"roomshift/internal/model"
)

type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository builds a UserRepository on the users collection.
func NewMongoUserRepository(database *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: database.Collection(db.UsersCollection)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

type mongoBookingRepository struct {
	coll *mongo.Collection
}

// NewMongoBookingRepository builds a BookingRepository on the bookings collection.
func NewMongoBookingRepository(database *mongo.Database) BookingRepository {
	return &mongoBookingRepository{coll: database.Collection(db.BookingsCollection)}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, booking)
	return err
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		return nil, notFound(err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	bookings := make([]model.Booking, 0)
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepository) UpdatePayment(ctx context.Context, id string, update model.PaymentUpdate) error {
	set := bson.M{}
	if update.Status != "" {
		set["paymentStatus"] = update.Status
	}
	if update.Method != "" {
		set["paymentMethod"] = update.Method
	}
	if update.TransactionID != "" {
		set["transactionId"] = update.TransactionID
	}
	if len(set) == 0 {
		return nil
	}
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// paymentTransactionDoc stores the amount as a decimal string; the driver has
// no codec for decimal.Decimal.
type paymentTransactionDoc struct {
	TransactionID string              `bson:"_id"`
	BookingID     string              `bson:"bookingId"`
	Gateway       model.PaymentMethod `bson:"gateway"`
	Amount        string              `bson:"amount"`
	Status        model.PaymentStatus `bson:"status"`
	GatewayRef    string              `bson:"gatewayRef,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt"`
}

type mongoPaymentRepository struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepository builds a PaymentRepository on the payment_transactions collection.
func NewMongoPaymentRepository(database *mongo.Database) PaymentRepository {
	return &mongoPaymentRepository{coll: database.Collection(db.PaymentTransactionsCollection)}
}

func (r *mongoPaymentRepository) Create(ctx context.Context, txn *model.PaymentTransaction) error {
	now := time.Now()
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = now
	}
	txn.UpdatedAt = now
	// upsert: a repeated initiate in the same millisecond replaces the record
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": txn.TransactionID}, paymentTransactionDoc{
		TransactionID: txn.TransactionID,
		BookingID:     txn.BookingID,
		Gateway:       txn.Gateway,
		Amount:        txn.Amount.String(),
		Status:        txn.Status,
		GatewayRef:    txn.GatewayRef,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}, options.Replace().SetUpsert(true))
	return err
}

func (r *mongoPaymentRepository) FindByID(ctx context.Context, transactionID string) (*model.PaymentTransaction, error) {
	var doc paymentTransactionDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": transactionID}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	amount, err := decimal.NewFromString(doc.Amount)
	if err != nil {
		return nil, fmt.Errorf("decode amount of %s: %w", transactionID, err)
	}
	return &model.PaymentTransaction{
		TransactionID: doc.TransactionID,
		BookingID:     doc.BookingID,
		Gateway:       doc.Gateway,
		Amount:        amount,
		Status:        doc.Status,
		GatewayRef:    doc.GatewayRef,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

func (r *mongoPaymentRepository) UpdateStatus(ctx context.Context, transactionID string, status model.PaymentStatus, gatewayRef string) error {
	set := bson.M{"status": status, "updatedAt": time.Now()}
	if gatewayRef != "" {
		set["gatewayRef"] = gatewayRef
	}
	_, err := r.coll.UpdateByID(ctx, transactionID, bson.M{"$set": set})
	return err
}

type mongoPaymentLogRepository struct {
	coll *mongo.Collection
}

// NewMongoPaymentLogRepository builds a PaymentLogRepository on the payment_logs collection.
func NewMongoPaymentLogRepository(database *mongo.Database) PaymentLogRepository {
	return &mongoPaymentLogRepository{coll: database.Collection(db.PaymentLogsCollection)}
}

func (r *mongoPaymentLogRepository) Create(ctx context.Context, log *model.PaymentLog) error {
	prepareLog(log)
	_, err := r.coll.InsertOne(ctx, log)
	return err
}

func (r *mongoPaymentLogRepository) CreateBatch(ctx context.Context, logs []model.PaymentLog) error {
	if len(logs) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(logs))
	for i := range logs {
		prepareLog(&logs[i])
		docs = append(docs, logs[i])
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

func prepareLog(log *model.PaymentLog) {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
