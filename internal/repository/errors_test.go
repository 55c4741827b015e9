package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMongoErr(t *testing.T) {
	assert.NoError(t, mongoErr(nil))
	assert.ErrorIs(t, mongoErr(mongo.ErrNoDocuments), domain.ErrNotFound)

	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
	assert.ErrorIs(t, mongoErr(dup), domain.ErrDuplicateKey)

	assert.ErrorIs(t, mongoErr(mongo.ErrClientDisconnected), domain.ErrStoreUnavailable)
	assert.ErrorIs(t, mongoErr(fmt.Errorf("find: %w", context.DeadlineExceeded)), domain.ErrStoreUnavailable)

	other := errors.New("boom")
	assert.Equal(t, other, mongoErr(other))
}

func TestPGErr(t *testing.T) {
	assert.NoError(t, pgErr(nil))
	assert.ErrorIs(t, pgErr(pgx.ErrNoRows), domain.ErrNotFound)
	assert.ErrorIs(t, pgErr(&pgconn.PgError{Code: "23505"}), domain.ErrDuplicateKey)
	assert.ErrorIs(t, pgErr(context.DeadlineExceeded), domain.ErrStoreUnavailable)

	ve := domain.IsValidationError(pgErr(&pgconn.PgError{Code: "23514", ColumnName: "persons", Message: "check violation"}))
	require.NotNil(t, ve)
	assert.Equal(t, "check violation", ve.Fields()["persons"])

	other := errors.New("boom")
	assert.Equal(t, other, pgErr(other))
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	ctx := context.Background()
	pg := NewBookingRepository(&pgxpool.Pool{})

	_, err := pg.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = pg.Delete(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mg := &MongoBookingRepository{now: defaultClock}
	_, err = mg.GetByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = mg.Delete(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewBookingRepository(pool))
	assert.NotNil(t, NewEnquiryRepository(pool))
}

func TestPGReplaceValidatesBeforeQuerying(t *testing.T) {
	repo := NewBookingRepository(&pgxpool.Pool{})

	_, err := repo.Replace(context.Background(), "ignored", &domain.Booking{})
	assert.NotNil(t, domain.IsValidationError(err))
}

func TestMongoStoreRepositories(t *testing.T) {
	client, err := mongo.NewClient()
	require.NoError(t, err)
	db := client.Database("goa-holidays-test")

	fixed := func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }
	store := &MongoStore{client: client, db: db, now: fixed}

	bookings, ok := store.Bookings().(*MongoBookingRepository)
	require.True(t, ok)
	assert.Equal(t, bookingsCollection, bookings.coll.Name())
	assert.Equal(t, fixed(), bookings.now())

	enquiries, ok := store.Enquiries().(*MongoEnquiryRepository)
	require.True(t, ok)
	assert.Equal(t, enquiriesCollection, enquiries.coll.Name())
	assert.Equal(t, fixed(), enquiries.now())

	fallback := NewMongoBookingRepository(db, nil).(*MongoBookingRepository)
	assert.NotNil(t, fallback.now)
}
