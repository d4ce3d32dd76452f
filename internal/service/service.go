package service

import (
	"context"

	"volunteer-backend/internal/domain"
)

// FeaturedPostLimit caps the soonest-deadline listing
const FeaturedPostLimit = 8

type PostService interface {
	SearchPosts(ctx context.Context, search string) ([]domain.Post, error)
	FeaturedPosts(ctx context.Context) ([]domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	ListOrganizerPosts(ctx context.Context, callerEmail, email string) ([]domain.Post, error)
	CreatePost(ctx context.Context, callerEmail string, post *domain.Post) (*domain.WriteResult, error)
	UpdatePost(ctx context.Context, callerEmail, id string, patch *domain.PostPatch) (*domain.WriteResult, error)
	DeletePost(ctx context.Context, callerEmail, id string) (*domain.WriteResult, error)
}

type VolunteerService interface {
	ListVolunteerRequests(ctx context.Context, callerEmail, email string) ([]domain.VolunteerRequest, error)
	ListOrganizerRequests(ctx context.Context, callerEmail, email string) ([]domain.VolunteerRequest, error)
	Apply(ctx context.Context, callerEmail string, req *domain.VolunteerRequest) error
	Cancel(ctx context.Context, callerEmail, requestID string) error
	Reject(ctx context.Context, callerEmail, requestID string) error
	Approve(ctx context.Context, callerEmail, requestID string) (*domain.WriteResult, error)
}

type ContactService interface {
	SubmitMessage(ctx context.Context, msg *domain.ContactMessage) (string, error)
}

type HealthService interface {
	Ping(ctx context.Context) error
}

// Notifier delivers out-of-band notifications. Failures never fail the request
// that triggered them.
type Notifier interface {
	NotifyContactMessage(ctx context.Context, msg *domain.ContactMessage) error
}
