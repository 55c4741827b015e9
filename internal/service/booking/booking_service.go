package booking

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/Domenick1991/goaholidays/internal/kafka"
	"github.com/Domenick1991/goaholidays/internal/pricing"
	"github.com/Domenick1991/goaholidays/internal/repository"
	"github.com/Domenick1991/goaholidays/internal/storage"
	"github.com/Domenick1991/goaholidays/internal/validation"
)

type BookingUseCase interface {
	List(ctx context.Context) ([]domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	Create(ctx context.Context, input domain.BookingInput) (*domain.Booking, error)
	Update(ctx context.Context, id string, input domain.BookingInput) (*domain.Booking, error)
	Delete(ctx context.Context, id string) (*domain.Booking, error)
}

type Cache interface {
	GetBookings(ctx context.Context) ([]domain.Booking, error)
	SetBookings(ctx context.Context, bookings []domain.Booking) error
	InvalidateBookings(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// bookingDateLayout matches what the browser form stamps on submission.
const bookingDateLayout = "02/01/2006, 15:04:05"

type BookingService struct {
	bookings           repository.BookingRepository
	store              storage.Readiness
	cache              Cache
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	recomputePrices    bool
	now                func() time.Time

	// writes counts committed changes; List only keeps a cache fill no write overlapped.
	writes atomic.Uint64
}

type BookingServiceOption func(*BookingService)

func WithCache(cache Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithEvents(producer Producer, eventsTopic, notificationsTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.eventsTopic = eventsTopic
		s.notificationsTopic = notificationsTopic
	}
}

// WithRecomputedPrices makes the service price every write itself instead of trusting the client.
func WithRecomputedPrices(enabled bool) BookingServiceOption {
	return func(s *BookingService) {
		s.recomputePrices = enabled
	}
}

func NewBookingService(bookings repository.BookingRepository, store storage.Readiness, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings: bookings,
		store:    store,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.GetBookings(ctx)
		if err != nil {
			log.Printf("bookings cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	generation := s.writes.Load()
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	if s.cache != nil {
		s.fillCache(ctx, generation, bookings)
	}
	return bookings, nil
}

// fillCache stores a list read at generation. A write that lands during the read skips
// the fill; one that lands during the fill drops the entry again.
func (s *BookingService) fillCache(ctx context.Context, generation uint64, bookings []domain.Booking) {
	if s.writes.Load() != generation {
		return
	}
	if err := s.cache.SetBookings(ctx, bookings); err != nil {
		log.Printf("bookings cache write failed: %v", err)
		return
	}
	if s.writes.Load() != generation {
		if err := s.cache.InvalidateBookings(ctx); err != nil {
			log.Printf("WARNING: failed to invalidate bookings cache: %v", err)
		}
	}
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) Create(ctx context.Context, input domain.BookingInput) (*domain.Booking, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	booking, err := s.prepare(input)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.changed(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

func (s *BookingService) Update(ctx context.Context, id string, input domain.BookingInput) (*domain.Booking, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	booking, err := s.prepare(input)
	if err != nil {
		return nil, err
	}

	updated, err := s.bookings.Replace(ctx, id, booking)
	if err != nil {
		return nil, fmt.Errorf("update booking %s: %w", id, err)
	}

	s.changed(ctx, kafka.EventBookingUpdated, updated)
	return updated, nil
}

func (s *BookingService) Delete(ctx context.Context, id string) (*domain.Booking, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	deleted, err := s.bookings.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete booking %s: %w", id, err)
	}

	s.changed(ctx, kafka.EventBookingDeleted, deleted)
	return deleted, nil
}

func (s *BookingService) ready() error {
	if s.store != nil && !s.store.Ready() {
		return fmt.Errorf("%w (state: %s)", domain.ErrStoreUnavailable, s.store.State())
	}
	return nil
}

// prepare validates the form and fills in what the server derives: the package display
// name, missing or recomputed prices and the submission date.
func (s *BookingService) prepare(input domain.BookingInput) (*domain.Booking, error) {
	input = input.Normalize()
	if errs := validation.ValidateBooking(input); !errs.Valid() {
		return nil, errs.Err()
	}

	booking := &domain.Booking{
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Package:        input.Package,
		PackageName:    input.PackageName,
		Persons:        input.Persons,
		NewYearVoucher: input.NewYearVoucher,
		BookingDate:    input.BookingDate,
	}

	if booking.PackageName == "" {
		if pkg, ok := domain.Lookup(booking.Package); ok {
			booking.PackageName = pkg.Name
		}
	}

	if s.recomputePrices || !input.HasPrices() {
		pricing.Quote(booking.Package, booking.Persons, booking.NewYearVoucher).Apply(booking)
	} else {
		if err := requirePrices(input); err != nil {
			return nil, err
		}
		booking.BasePrice = deref(input.BasePrice)
		booking.Discount = deref(input.Discount)
		booking.DiscountAmount = deref(input.DiscountAmount)
		booking.PriceAfterDiscount = deref(input.PriceAfterDiscount)
		booking.VoucherDiscount = deref(input.VoucherDiscount)
		booking.TotalPrice = deref(input.TotalPrice)
	}

	if booking.BookingDate == "" {
		booking.BookingDate = s.now().Format(bookingDateLayout)
	}
	return booking, nil
}

// requirePrices rejects a partial price set; only voucherDiscount may be left out.
func requirePrices(in domain.BookingInput) error {
	ve := domain.NewValidationError()
	for _, field := range []struct {
		name  string
		value *float64
	}{
		{"basePrice", in.BasePrice},
		{"discount", in.Discount},
		{"discountAmount", in.DiscountAmount},
		{"priceAfterDiscount", in.PriceAfterDiscount},
		{"totalPrice", in.TotalPrice},
	} {
		if field.value == nil {
			ve.Add(field.name, "Path `"+field.name+"` is required.")
		}
	}
	return ve.OrNil()
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// changed drops the cached list and announces the change. Neither step fails the request.
func (s *BookingService) changed(ctx context.Context, eventType string, booking *domain.Booking) {
	s.writes.Add(1)
	if s.cache != nil {
		if err := s.cache.InvalidateBookings(ctx); err != nil {
			log.Printf("WARNING: failed to invalidate bookings cache: %v", err)
		}
	}
	if err := s.publish(ctx, eventType, booking); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", eventType, booking.ID, err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}
	event := kafka.NewBookingEvent(eventType, booking, s.now())
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
