package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/goaholidays/internal/domain"
)

// BookingRepository persists bookings. Implementations re-validate every record before
// writing it and report failures as domain.ErrNotFound, domain.ErrDuplicateKey,
// domain.ErrStoreUnavailable or *domain.ValidationError.
type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) error
	Replace(ctx context.Context, id string, booking *domain.Booking) (*domain.Booking, error)
	Delete(ctx context.Context, id string) (*domain.Booking, error)
}

// EnquiryRepository persists enquiries. Enquiries are never changed once stored.
type EnquiryRepository interface {
	List(ctx context.Context) ([]domain.Enquiry, error)
	Create(ctx context.Context, enquiry *domain.Enquiry) error
}

// Clock lets tests pin the timestamps a repository assigns.
type Clock func() time.Time

func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
