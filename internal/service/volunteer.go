package service

import (
	"context"
	"errors"
	"fmt"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/metrics"
	"volunteer-backend/internal/repository"
)

const (
	opApply  = "apply"
	opCancel = "cancel"
	opReject = "reject"
)

type volunteerService struct {
	requestRepo repository.VolunteerRequestRepository
}

func NewVolunteerService(requestRepo repository.VolunteerRequestRepository) VolunteerService {
	return &volunteerService{requestRepo: requestRepo}
}

func (s *volunteerService) ListVolunteerRequests(ctx context.Context, callerEmail, email string) ([]domain.VolunteerRequest, error) {
	if callerEmail != email {
		return nil, domain.ErrForbidden
	}
	return s.requestRepo.ListByVolunteer(ctx, email)
}

func (s *volunteerService) ListOrganizerRequests(ctx context.Context, callerEmail, email string) ([]domain.VolunteerRequest, error) {
	if callerEmail != email {
		return nil, domain.ErrForbidden
	}
	return s.requestRepo.ListByOrganizer(ctx, email)
}

// Apply takes one slot of the post and records the caller's application in a
// single transaction.
func (s *volunteerService) Apply(ctx context.Context, callerEmail string, req *domain.VolunteerRequest) error {
	logger.EnterMethod(ctx, "volunteerService.Apply", "caller", callerEmail, "postID", req.PostID)

	if callerEmail == "" || callerEmail != req.VolunteerEmail {
		s.finish(ctx, opApply, domain.ErrForbidden)
		return domain.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		s.finish(ctx, opApply, err)
		return err
	}
	req.ID = ""
	req.Status = domain.RequestStatusPending

	err := s.requestRepo.CreateAndReserve(ctx, req)
	s.finish(ctx, opApply, err)
	if err != nil {
		return fmt.Errorf("apply to post %s: %w", req.PostID, err)
	}
	return nil
}

// Cancel withdraws the caller's own application and frees its slot
func (s *volunteerService) Cancel(ctx context.Context, callerEmail, requestID string) error {
	logger.EnterMethod(ctx, "volunteerService.Cancel", "caller", callerEmail, "requestID", requestID)

	_, err := s.requestRepo.DeleteAndRelease(ctx, requestID, func(req *domain.VolunteerRequest) error {
		if req.VolunteerEmail != callerEmail {
			return domain.ErrForbidden
		}
		return nil
	})
	s.finish(ctx, opCancel, err)
	return err
}

// Reject removes an application addressed to the caller and frees its slot
func (s *volunteerService) Reject(ctx context.Context, callerEmail, requestID string) error {
	logger.EnterMethod(ctx, "volunteerService.Reject", "caller", callerEmail, "requestID", requestID)

	_, err := s.requestRepo.DeleteAndRelease(ctx, requestID, organizerOnly(callerEmail))
	s.finish(ctx, opReject, err)
	return err
}

// Approve marks an application approved. The slot stays consumed.
func (s *volunteerService) Approve(ctx context.Context, callerEmail, requestID string) (*domain.WriteResult, error) {
	logger.EnterMethod(ctx, "volunteerService.Approve", "caller", callerEmail, "requestID", requestID)

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if errors.Is(err, domain.ErrRequestNotFound) {
		return domain.UpdateResult(0, 0), nil
	}
	if err != nil {
		logger.ExitMethodWithError(ctx, "volunteerService.Approve", err)
		return nil, err
	}
	if err := organizerOnly(callerEmail)(req); err != nil {
		logger.ExitMethodWithError(ctx, "volunteerService.Approve", err)
		return nil, err
	}

	res, err := s.requestRepo.UpdateStatus(ctx, requestID, domain.RequestStatusApproved)
	if err != nil {
		logger.ExitMethodWithError(ctx, "volunteerService.Approve", err)
		return nil, err
	}
	logger.ExitMethod(ctx, "volunteerService.Approve")
	return res, nil
}

func organizerOnly(callerEmail string) repository.AuthorizeFunc {
	return func(req *domain.VolunteerRequest) error {
		if callerEmail == "" || req.OrganizerEmail != callerEmail {
			return domain.ErrForbidden
		}
		return nil
	}
}

func (s *volunteerService) finish(ctx context.Context, operation string, err error) {
	metrics.RecordTransaction(operation, transactionResult(err))
	if err != nil {
		logger.ExitMethodWithError(ctx, "volunteerService."+operation, err)
		return
	}
	logger.ExitMethod(ctx, "volunteerService."+operation)
}

func transactionResult(err error) string {
	switch {
	case err == nil:
		return "committed"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, domain.ErrNoCapacity):
		return "no_capacity"
	case errors.Is(err, domain.ErrAlreadyApplied):
		return "duplicate"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrRequestNotFound):
		return "not_found"
	default:
		return "failed"
	}
}
