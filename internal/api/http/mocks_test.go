package http

import (
	"context"

	"volunteer-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) SearchPosts(ctx context.Context, search string) ([]domain.Post, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]domain.Post), args.Error(1)
}
func (m *MockPostService) FeaturedPosts(ctx context.Context) ([]domain.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Post), args.Error(1)
}
func (m *MockPostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) ListOrganizerPosts(ctx context.Context, callerEmail, email string) ([]domain.Post, error) {
	args := m.Called(ctx, callerEmail, email)
	return args.Get(0).([]domain.Post), args.Error(1)
}
func (m *MockPostService) CreatePost(ctx context.Context, callerEmail string, post *domain.Post) (*domain.WriteResult, error) {
	args := m.Called(ctx, callerEmail, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WriteResult), args.Error(1)
}
func (m *MockPostService) UpdatePost(ctx context.Context, callerEmail, id string, patch *domain.PostPatch) (*domain.WriteResult, error) {
	args := m.Called(ctx, callerEmail, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WriteResult), args.Error(1)
}
func (m *MockPostService) DeletePost(ctx context.Context, callerEmail, id string) (*domain.WriteResult, error) {
	args := m.Called(ctx, callerEmail, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WriteResult), args.Error(1)
}

type MockVolunteerService struct {
	mock.Mock
}

func (m *MockVolunteerService) ListVolunteerRequests(ctx context.Context, callerEmail, email string) ([]domain.VolunteerRequest, error) {
	args := m.Called(ctx, callerEmail, email)
	return args.Get(0).([]domain.VolunteerRequest), args.Error(1)
}
func (m *MockVolunteerService) ListOrganizerRequests(ctx context.Context, callerEmail, email string) ([]domain.VolunteerRequest, error) {
	args := m.Called(ctx, callerEmail, email)
	return args.Get(0).([]domain.VolunteerRequest), args.Error(1)
}
func (m *MockVolunteerService) Apply(ctx context.Context, callerEmail string, req *domain.VolunteerRequest) error {
	args := m.Called(ctx, callerEmail, req)
	return args.Error(0)
}
func (m *MockVolunteerService) Cancel(ctx context.Context, callerEmail, requestID string) error {
	args := m.Called(ctx, callerEmail, requestID)
	return args.Error(0)
}
func (m *MockVolunteerService) Reject(ctx context.Context, callerEmail, requestID string) error {
	args := m.Called(ctx, callerEmail, requestID)
	return args.Error(0)
}
func (m *MockVolunteerService) Approve(ctx context.Context, callerEmail, requestID string) (*domain.WriteResult, error) {
	args := m.Called(ctx, callerEmail, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WriteResult), args.Error(1)
}

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) SubmitMessage(ctx context.Context, msg *domain.ContactMessage) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
