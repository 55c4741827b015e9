package enquiry

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/Domenick1991/goaholidays/internal/kafka"
	"github.com/Domenick1991/goaholidays/internal/repository"
	"github.com/Domenick1991/goaholidays/internal/storage"
	"github.com/Domenick1991/goaholidays/internal/validation"
)

type EnquiryUseCase interface {
	List(ctx context.Context) ([]domain.Enquiry, error)
	Create(ctx context.Context, input domain.EnquiryInput) (*domain.Enquiry, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type EnquiryService struct {
	enquiries          repository.EnquiryRepository
	store              storage.Readiness
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	now                func() time.Time
}

type EnquiryServiceOption func(*EnquiryService)

func WithEvents(producer Producer, eventsTopic, notificationsTopic string) EnquiryServiceOption {
	return func(s *EnquiryService) {
		s.producer = producer
		s.eventsTopic = eventsTopic
		s.notificationsTopic = notificationsTopic
	}
}

func NewEnquiryService(enquiries repository.EnquiryRepository, store storage.Readiness, opts ...EnquiryServiceOption) *EnquiryService {
	service := &EnquiryService{
		enquiries: enquiries,
		store:     store,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *EnquiryService) List(ctx context.Context) ([]domain.Enquiry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	enquiries, err := s.enquiries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enquiries: %w", err)
	}
	return enquiries, nil
}

func (s *EnquiryService) Create(ctx context.Context, input domain.EnquiryInput) (*domain.Enquiry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	input = input.Normalize()
	if errs := validation.ValidateEnquiry(input); !errs.Valid() {
		return nil, errs.Err()
	}

	enquiry := &domain.Enquiry{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Package: input.Package,
		Message: input.Message,
	}
	if err := s.enquiries.Create(ctx, enquiry); err != nil {
		return nil, fmt.Errorf("create enquiry: %w", err)
	}

	if err := s.publish(ctx, enquiry); err != nil {
		log.Printf("WARNING: failed to publish enquiry_created event for enquiry %s: %v", enquiry.ID, err)
	}
	return enquiry, nil
}

func (s *EnquiryService) ready() error {
	if s.store != nil && !s.store.Ready() {
		return fmt.Errorf("%w (state: %s)", domain.ErrStoreUnavailable, s.store.State())
	}
	return nil
}

func (s *EnquiryService) publish(ctx context.Context, enquiry *domain.Enquiry) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}
	event := kafka.NewEnquiryEvent(enquiry, s.now())
	if err := s.producer.Publish(ctx, s.eventsTopic, enquiry.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, enquiry.ID, event)
	}
	return nil
}

var _ EnquiryUseCase = (*EnquiryService)(nil)
