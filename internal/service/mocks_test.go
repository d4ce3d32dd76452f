package service

import (
	"context"
	"time"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockPostRepo
type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) Create(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}
func (m *MockPostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostRepo) Search(ctx context.Context, titleContains string) ([]domain.Post, error) {
	args := m.Called(ctx, titleContains)
	return args.Get(0).([]domain.Post), args.Error(1)
}
func (m *MockPostRepo) ListSoonestDeadline(ctx context.Context, limit int) ([]domain.Post, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Post), args.Error(1)
}
func (m *MockPostRepo) ListByOrganizer(ctx context.Context, email string) ([]domain.Post, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.Post), args.Error(1)
}
func (m *MockPostRepo) CountExpiringBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPostRepo) Update(ctx context.Context, id string, patch *domain.PostPatch) (*domain.WriteResult, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WriteResult), args.Error(1)
}
func (m *MockPostRepo) Delete(ctx context.Context, id string) (*domain.WriteResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WriteResult), args.Error(1)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) GetByID(ctx context.Context, id string) (*domain.VolunteerRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerRequest), args.Error(1)
}
func (m *MockRequestRepo) ListByVolunteer(ctx context.Context, email string) ([]domain.VolunteerRequest, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.VolunteerRequest), args.Error(1)
}
func (m *MockRequestRepo) ListByOrganizer(ctx context.Context, email string) ([]domain.VolunteerRequest, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.VolunteerRequest), args.Error(1)
}
func (m *MockRequestRepo) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.WriteResult, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WriteResult), args.Error(1)
}
func (m *MockRequestRepo) CreateAndReserve(ctx context.Context, req *domain.VolunteerRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// DeleteAndRelease runs authorize against the stored application, the way
// both real backends do inside their transaction.
func (m *MockRequestRepo) DeleteAndRelease(ctx context.Context, id string, authorize repository.AuthorizeFunc) (*domain.VolunteerRequest, error) {
	args := m.Called(ctx, id)
	req, _ := args.Get(0).(*domain.VolunteerRequest)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if authorize != nil {
		if err := authorize(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// MockContactRepo
type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, msg *domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyContactMessage(ctx context.Context, msg *domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
