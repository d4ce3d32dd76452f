package mongodb

import (
	"context"
	"time"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type contactMessageRepository struct {
	coll *mongo.Collection
}

func (r *contactMessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.CreatedAt = time.Now().UTC()

	logger.DatabaseCall(ctx, "insertOne", contactsCollection, "id", msg.ID)
	_, err := r.coll.InsertOne(ctx, msg)
	logger.DatabaseResult(ctx, "insertOne", 1, err)
	return err
}
