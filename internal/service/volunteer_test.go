package service

import (
	"context"
	"errors"
	"testing"

	"volunteer-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedRequest() *domain.VolunteerRequest {
	return &domain.VolunteerRequest{
		ID:             "r1",
		PostID:         "p1",
		VolunteerEmail: "vol@x.com",
		OrganizerEmail: "org@x.com",
		Status:         domain.RequestStatusPending,
	}
}

func TestVolunteerService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRequestRepo)
		svc := NewVolunteerService(repo)

		req := &domain.VolunteerRequest{ID: "client", PostID: "p1", VolunteerEmail: "vol@x.com", Status: "approved"}
		repo.On("CreateAndReserve", ctx, req).Return(nil)

		require.NoError(t, svc.Apply(ctx, "vol@x.com", req))
		assert.Equal(t, domain.RequestStatusPending, req.Status)
		assert.Empty(t, req.ID)
		repo.AssertExpectations(t)
	})

	t.Run("CallerIsNotApplicant", func(t *testing.T) {
		repo := new(MockRequestRepo)
		svc := NewVolunteerService(repo)

		err := svc.Apply(ctx, "someone@x.com", &domain.VolunteerRequest{PostID: "p1", VolunteerEmail: "vol@x.com"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		repo.AssertNotCalled(t, "CreateAndReserve", mock.Anything, mock.Anything)
	})

	t.Run("NoCapacity", func(t *testing.T) {
		repo := new(MockRequestRepo)
		svc := NewVolunteerService(repo)

		repo.On("CreateAndReserve", ctx, mock.Anything).Return(domain.ErrNoCapacity)

		err := svc.Apply(ctx, "vol@x.com", &domain.VolunteerRequest{PostID: "p1", VolunteerEmail: "vol@x.com"})
		assert.ErrorIs(t, err, domain.ErrNoCapacity)
	})

	t.Run("MissingPostID", func(t *testing.T) {
		repo := new(MockRequestRepo)
		svc := NewVolunteerService(repo)

		err := svc.Apply(ctx, "vol@x.com", &domain.VolunteerRequest{VolunteerEmail: "vol@x.com"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestVolunteerService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("Volunteer", func(t *testing.T) {
		repo := new(MockRequestRepo)
		svc := NewVolunteerService(repo)
		repo.On("DeleteAndRelease", ctx, "r1").Return(storedRequest(), nil)

		assert.NoError(t, svc.Cancel(ctx, "vol@x.com", "r1"))
	})

	t.Run("Organizer cannot cancel", func(t *testing.T) {
		repo := new(MockRequestRepo)
		svc := NewVolunteerService(repo)
		repo.On("DeleteAndRelease", ctx, "r1").Return(storedRequest(), nil)

		assert.ErrorIs(t, svc.Cancel(ctx, "org@x.com", "r1"), domain.ErrForbidden)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRequestRepo)
		svc := NewVolunteerService(repo)
		repo.On("DeleteAndRelease", ctx, "r9").Return(nil, domain.ErrRequestNotFound)

		assert.ErrorIs(t, svc.Cancel(ctx, "vol@x.com", "r9"), domain.ErrRequestNotFound)
	})
}

func TestVolunteerService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("Organizer", func(t *testing.T) {
		repo := new(MockRequestRepo)
		svc := NewVolunteerService(repo)
		repo.On("DeleteAndRelease", ctx, "r1").Return(storedRequest(), nil)

		assert.NoError(t, svc.Reject(ctx, "org@x.com", "r1"))
	})

	t.Run("Volunteer cannot reject", func(t *testing.T) {
		repo := new(MockRequestRepo)
		svc := NewVolunteerService(repo)
		repo.On("DeleteAndRelease", ctx, "r1").Return(storedRequest(), nil)

		assert.ErrorIs(t, svc.Reject(ctx, "vol@x.com", "r1"), domain.ErrForbidden)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		repo := new(MockRequestRepo)
		svc := NewVolunteerService(repo)
		repo.On("DeleteAndRelease", ctx, "r1").Return(nil, errors.New("tx aborted"))

		assert.EqualError(t, svc.Reject(ctx, "org@x.com", "r1"), "tx aborted")
	})
}

func TestVolunteerService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("Organizer", func(t *testing.T) {
		repo := new(MockRequestRepo)
		svc := NewVolunteerService(repo)
		repo.On("GetByID", ctx, "r1").Return(storedRequest(), nil)
		repo.On("UpdateStatus", ctx, "r1", domain.RequestStatusApproved).Return(domain.UpdateResult(1, 1), nil)

		res, err := svc.Approve(ctx, "org@x.com", "r1")
		require.NoError(t, err)
		assert.EqualValues(t, 1, *res.ModifiedCount)
	})

	t.Run("NotOrganizer", func(t *testing.T) {
		repo := new(MockRequestRepo)
		svc := NewVolunteerService(repo)
		repo.On("GetByID", ctx, "r1").Return(storedRequest(), nil)

		_, err := svc.Approve(ctx, "vol@x.com", "r1")
		assert.ErrorIs(t, err, domain.ErrForbidden)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing", func(t *testing.T) {
		repo := new(MockRequestRepo)
		svc := NewVolunteerService(repo)
		repo.On("GetByID", ctx, "r9").Return(nil, domain.ErrRequestNotFound)

		res, err := svc.Approve(ctx, "org@x.com", "r9")
		require.NoError(t, err)
		assert.EqualValues(t, 0, *res.MatchedCount)
	})
}

func TestVolunteerService_OwnerScopedLists(t *testing.T) {
	repo := new(MockRequestRepo)
	svc := NewVolunteerService(repo)
	ctx := context.Background()

	_, err := svc.ListVolunteerRequests(ctx, "a@x.com", "b@x.com")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.ListOrganizerRequests(ctx, "a@x.com", "b@x.com")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	repo.On("ListByOrganizer", ctx, "a@x.com").Return([]domain.VolunteerRequest{*storedRequest()}, nil)
	reqs, err := svc.ListOrganizerRequests(ctx, "a@x.com", "a@x.com")
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}

func TestTransactionResult(t *testing.T) {
	assert.Equal(t, "committed", transactionResult(nil))
	assert.Equal(t, "no_capacity", transactionResult(domain.ErrNoCapacity))
	assert.Equal(t, "not_found", transactionResult(domain.ErrRequestNotFound))
	assert.Equal(t, "failed", transactionResult(errors.New("boom")))
}
