package repository

import (
	"context"
	"time"

	"volunteer-backend/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	Search(ctx context.Context, titleContains string) ([]domain.Post, error)
	ListSoonestDeadline(ctx context.Context, limit int) ([]domain.Post, error)
	ListByOrganizer(ctx context.Context, email string) ([]domain.Post, error)
	CountExpiringBetween(ctx context.Context, from, to time.Time) (int64, error)
	Update(ctx context.Context, id string, patch *domain.PostPatch) (*domain.WriteResult, error)
	Delete(ctx context.Context, id string) (*domain.WriteResult, error)
}

// AuthorizeFunc inspects an application inside the release transaction and
// returns an error to abort it.
type AuthorizeFunc func(req *domain.VolunteerRequest) error

type VolunteerRequestRepository interface {
	GetByID(ctx context.Context, id string) (*domain.VolunteerRequest, error)
	ListByVolunteer(ctx context.Context, email string) ([]domain.VolunteerRequest, error)
	ListByOrganizer(ctx context.Context, email string) ([]domain.VolunteerRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.WriteResult, error)

	// CreateAndReserve atomically takes one slot of the post counter and
	// inserts the application. The counter never drops below zero.
	CreateAndReserve(ctx context.Context, req *domain.VolunteerRequest) error
	// DeleteAndRelease atomically removes the application and gives its slot
	// back to the post. authorize runs on the locked application first.
	DeleteAndRelease(ctx context.Context, id string, authorize AuthorizeFunc) (*domain.VolunteerRequest, error)
}

type ContactMessageRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Store bundles the repositories one document-store backend provides
type Store struct {
	Posts    PostRepository
	Requests VolunteerRequestRepository
	Contacts ContactMessageRepository
	Health   HealthChecker
}
