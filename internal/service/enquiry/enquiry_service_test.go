package enquiry

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/Domenick1991/goaholidays/internal/kafka"
	"github.com/Domenick1991/goaholidays/internal/repository"
	"github.com/Domenick1991/goaholidays/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEnquiryRepository struct {
	mock.Mock
}

func (m *MockEnquiryRepository) List(ctx context.Context) ([]domain.Enquiry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Enquiry), args.Error(1)
}

func (m *MockEnquiryRepository) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	args := m.Called(ctx, enquiry)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type stubStore struct {
	state storage.State
}

func (s stubStore) State() storage.State { return s.state }
func (s stubStore) Ready() bool          { return s.state == storage.StateConnected }

func validInput() domain.EnquiryInput {
	return domain.EnquiryInput{
		Name:    "Ravi",
		Email:   " RAVI@example.com",
		Phone:   "9876543210",
		Package: domain.TierPlatinum,
		Message: "Do you arrange airport pickup? ",
	}
}

func TestEnquiryService_Create(t *testing.T) {
	repo := &MockEnquiryRepository{}
	producer := &MockProducer{}
	service := NewEnquiryService(repo, stubStore{state: storage.StateConnected}, WithEvents(producer, "booking-events", "notifications"))
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(e *domain.Enquiry) bool {
		return e.Email == "ravi@example.com" && e.Message == "Do you arrange airport pickup?"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Enquiry).ID = "e-1"
	}).Return(nil).Once()
	isEnquiry := mock.MatchedBy(func(e kafka.Event) bool { return e.Type == kafka.EventEnquiryCreated })
	producer.On("Publish", ctx, "booking-events", "e-1", isEnquiry).Return(nil).Once()
	producer.On("Publish", ctx, "notifications", "e-1", isEnquiry).Return(errors.New("broker down")).Once()

	enquiry, err := service.Create(ctx, validInput())

	require.NoError(t, err)
	assert.Equal(t, "e-1", enquiry.ID)
	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestEnquiryService_Create_InvalidEmailIsNotPersisted(t *testing.T) {
	store := repository.NewMemoryStore(nil)
	service := NewEnquiryService(store.Enquiries(), stubStore{state: storage.StateConnected})
	ctx := context.Background()

	input := validInput()
	input.Email = "foo"

	enquiry, err := service.Create(ctx, input)

	assert.Nil(t, enquiry)
	ve := domain.IsValidationError(err)
	require.NotNil(t, ve)
	assert.Equal(t, "Please enter a valid email address", ve.Fields()["email"])

	list, err := service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEnquiryService_StoreUnavailable(t *testing.T) {
	repo := &MockEnquiryRepository{}
	service := NewEnquiryService(repo, stubStore{state: storage.StateDisconnected})
	ctx := context.Background()

	_, err := service.List(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, err = service.Create(ctx, validInput())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Empty(t, repo.Calls)
}

func TestEnquiryService_List(t *testing.T) {
	repo := &MockEnquiryRepository{}
	service := NewEnquiryService(repo, nil)
	ctx := context.Background()

	repo.On("List", ctx).Return([]domain.Enquiry{{ID: "e-2"}, {ID: "e-1"}}, nil).Once()
	repo.On("List", ctx).Return(nil, domain.ErrStoreUnavailable).Once()

	list, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = service.List(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
