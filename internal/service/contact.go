package service

import (
	"context"
	"fmt"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/repository"
)

type contactService struct {
	contactRepo repository.ContactMessageRepository
	notifier    Notifier
}

func NewContactService(contactRepo repository.ContactMessageRepository, notifier Notifier) ContactService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &contactService{contactRepo: contactRepo, notifier: notifier}
}

// SubmitMessage stores the message and returns its id. Notification failures
// are logged only.
func (s *contactService) SubmitMessage(ctx context.Context, msg *domain.ContactMessage) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}
	msg.ID = ""
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return "", fmt.Errorf("save contact message: %w", err)
	}

	if err := s.notifier.NotifyContactMessage(ctx, msg); err != nil {
		logger.WarnContext(ctx, "Contact notification failed", "messageID", msg.ID, "error", err)
	}
	return msg.ID, nil
}

type healthService struct {
	checker repository.HealthChecker
}

func NewHealthService(checker repository.HealthChecker) HealthService {
	return &healthService{checker: checker}
}

func (s *healthService) Ping(ctx context.Context) error {
	return s.checker.Ping(ctx)
}
