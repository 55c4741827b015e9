package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/google/uuid"
)

type memoryRecord[T any] struct {
	seq  int64
	item T
}

// MemoryStore keeps bookings and enquiries in process. It is always reachable.
type MemoryStore struct {
	mu        sync.Mutex
	now       Clock
	seq       int64
	bookings  map[string]memoryRecord[domain.Booking]
	enquiries map[string]memoryRecord[domain.Enquiry]
}

func NewMemoryStore(now Clock) *MemoryStore {
	if now == nil {
		now = defaultClock
	}
	return &MemoryStore{
		now:       now,
		bookings:  make(map[string]memoryRecord[domain.Booking]),
		enquiries: make(map[string]memoryRecord[domain.Enquiry]),
	}
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Bookings() BookingRepository {
	return &MemoryBookingRepository{store: s}
}

func (s *MemoryStore) Enquiries() EnquiryRepository {
	return &MemoryEnquiryRepository{store: s}
}

type MemoryBookingRepository struct {
	store *MemoryStore
}

func (r *MemoryBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]memoryRecord[domain.Booking], 0, len(s.bookings))
	for _, rec := range s.bookings {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.item.CreatedAt.Equal(b.item.CreatedAt) {
			return a.item.CreatedAt.After(b.item.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]domain.Booking, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.item)
	}
	return out, nil
}

func (r *MemoryBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b := rec.item
	return &b, nil
}

func (r *MemoryBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if err := booking.Validate(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	booking.ID = uuid.NewString()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	s.seq++
	s.bookings[booking.ID] = memoryRecord[domain.Booking]{seq: s.seq, item: *booking}
	return nil
}

func (r *MemoryBookingRepository) Replace(ctx context.Context, id string, booking *domain.Booking) (*domain.Booking, error) {
	if err := booking.Validate(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	updated := *booking
	updated.ID = id
	updated.CreatedAt = rec.item.CreatedAt
	updated.UpdatedAt = s.now()

	rec.item = updated
	s.bookings[id] = rec
	return &updated, nil
}

func (r *MemoryBookingRepository) Delete(ctx context.Context, id string) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(s.bookings, id)

	b := rec.item
	return &b, nil
}

type MemoryEnquiryRepository struct {
	store *MemoryStore
}

func (r *MemoryEnquiryRepository) List(ctx context.Context) ([]domain.Enquiry, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]memoryRecord[domain.Enquiry], 0, len(s.enquiries))
	for _, rec := range s.enquiries {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.item.CreatedAt.Equal(b.item.CreatedAt) {
			return a.item.CreatedAt.After(b.item.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]domain.Enquiry, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.item)
	}
	return out, nil
}

func (r *MemoryEnquiryRepository) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	if err := enquiry.Validate(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	enquiry.ID = uuid.NewString()
	enquiry.CreatedAt = now
	enquiry.UpdatedAt = now

	s.seq++
	s.enquiries[enquiry.ID] = memoryRecord[domain.Enquiry]{seq: s.seq, item: *enquiry}
	return nil
}

var (
	_ BookingRepository = (*MemoryBookingRepository)(nil)
	_ EnquiryRepository = (*MemoryEnquiryRepository)(nil)
)
