package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the Mongo backend.
const (
	UsersCollection               = "users"
	BookingsCollection            = "bookings"
	PaymentTransactionsCollection = "payment_transactions"
	PaymentLogsCollection         = "payment_logs"
)

// Mongo bundles the client with the database handle the repositories use.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongo connects to uri, pings the primary and returns the named database.
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Mongo{Client: client, Database: client.Database(database)}, nil
}

// EnsureIndexes creates the unique email index and the history lookup index.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.Database.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	_, err = m.Database.Collection(BookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("bookings index: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
