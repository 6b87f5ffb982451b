package repository

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"roomshift/internal/config"
	"roomshift/internal/db"
)

// Store bundles the repositories of one storage backend.
type Store struct {
	Users        UserRepository
	Bookings     BookingRepository
	Transactions PaymentRepository
	Logs         PaymentLogRepository

	close func(ctx context.Context) error
}

// NewGormStore builds a Store on an open GORM connection.
func NewGormStore(gormDB *gorm.DB) *Store {
	return &Store{
		Users:        NewUserRepository(gormDB),
		Bookings:     NewBookingRepository(gormDB),
		Transactions: NewPaymentRepository(gormDB),
		Logs:         NewPaymentLogRepository(gormDB),
		close: func(context.Context) error {
			return db.CloseSQL(gormDB)
		},
	}
}

// NewMongoStore builds a Store on a Mongo database.
func NewMongoStore(m *db.Mongo) *Store {
	return newMongoStore(m.Database, m.Close)
}

func newMongoStore(database *mongo.Database, closeFn func(ctx context.Context) error) *Store {
	return &Store{
		Users:        NewMongoUserRepository(database),
		Bookings:     NewMongoBookingRepository(database),
		Transactions: NewMongoPaymentRepository(database),
		Logs:         NewMongoPaymentLogRepository(database),
		close:        closeFn,
	}
}

// Open connects to the backend named by cfg.DBDriver and prepares its schema.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.DBDriver == config.DriverMongo {
		m, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		if cfg.ResetDB {
			log.Println("RESET_DB=true detected, dropping database...")
			if err := m.Database.Drop(ctx); err != nil {
				_ = m.Close(ctx)
				return nil, fmt.Errorf("drop database: %w", err)
			}
		}
		if err := m.EnsureIndexes(ctx); err != nil {
			_ = m.Close(ctx)
			return nil, err
		}
		return NewMongoStore(m), nil
	}

	gormDB, err := db.NewSQL(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		_ = db.CloseSQL(gormDB)
		return nil, err
	}
	return NewGormStore(gormDB), nil
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
