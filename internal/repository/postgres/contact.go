package postgres

import (
	"context"
	"database/sql"
	"time"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/repository"

	"github.com/google/uuid"
)

type contactMessageRepository struct {
	db *sql.DB
}

func NewContactMessageRepository(db *sql.DB) repository.ContactMessageRepository {
	return &contactMessageRepository{db: db}
}

func (r *contactMessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.CreatedAt = time.Now().UTC()
	extra, err := encodeExtra(msg.Extra)
	if err != nil {
		return err
	}

	query := `INSERT INTO contact_messages (id, name, email, subject, message, extra, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	logger.DatabaseCall(ctx, "insert", "contact_messages", "id", msg.ID)
	res, err := r.db.ExecContext(ctx, query, msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, extra, msg.CreatedAt)
	logger.DatabaseResult(ctx, "insert", rowsAffected(res), err)
	return err
}
