package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/goaholidays/config"
	"github.com/Domenick1991/goaholidays/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const (
	bookingsCollection  = "bookings"
	enquiriesCollection = "enquiries"
)

// MongoStore owns the client; repositories share its database handle.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	now    Clock
}

// NewMongoStore configures a client without waiting for the server; reachability
// is established later by pinging.
func NewMongoStore(ctx context.Context, cfg config.DatabaseConfig) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(30 * time.Second).
		SetConnectTimeout(30 * time.Second).
		SetSocketTimeout(45 * time.Second).
		SetMaxPoolSize(10).
		SetRetryWrites(true).
		SetWriteConcern(writeconcern.Majority())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("configure mongo client: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(cfg.MongoDatabase),
		now:    defaultClock,
	}, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the createdAt index both collections are listed by.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	for _, name := range []string{bookingsCollection, enquiriesCollection} {
		_, err := s.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		})
		if err != nil {
			return fmt.Errorf("create %s index: %w", name, err)
		}
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Bookings() BookingRepository {
	return NewMongoBookingRepository(s.db, s.now)
}

func (s *MongoStore) Enquiries() EnquiryRepository {
	return NewMongoEnquiryRepository(s.db, s.now)
}

// mongoErr maps driver errors onto the domain taxonomy.
func mongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %w", domain.ErrDuplicateKey, err)
	case mongo.IsNetworkError(err),
		mongo.IsTimeout(err),
		errors.Is(err, mongo.ErrClientDisconnected),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	default:
		return err
	}
}
