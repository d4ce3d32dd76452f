package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type postRepository struct {
	coll *mongo.Collection
}

func (r *postRepository) Create(ctx context.Context, p *domain.Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()

	logger.DatabaseCall(ctx, "insertOne", postsCollection, "id", p.ID)
	_, err := r.coll.InsertOne(ctx, p)
	logger.DatabaseResult(ctx, "insertOne", 1, err)
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	var p domain.Post
	err := r.coll.FindOne(ctx, byID(id)).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) Search(ctx context.Context, titleContains string) ([]domain.Post, error) {
	return r.find(ctx, titleFilter(titleContains))
}

func (r *postRepository) ListSoonestDeadline(ctx context.Context, limit int) ([]domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "deadline", Value: 1}}).SetLimit(int64(limit))
	return r.find(ctx, bson.M{}, opts)
}

func (r *postRepository) ListByOrganizer(ctx context.Context, email string) ([]domain.Post, error) {
	return r.find(ctx, bson.M{"organizer.email": email})
}

func (r *postRepository) CountExpiringBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.coll.CountDocuments(ctx, deadlineBetween(from, to))
}

func (r *postRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]domain.Post, error) {
	logger.DatabaseCall(ctx, "find", postsCollection)
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		logger.DatabaseResult(ctx, "find", 0, err)
		return nil, err
	}

	posts := []domain.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	logger.DatabaseResult(ctx, "find", int64(len(posts)), nil)
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, id string, patch *domain.PostPatch) (*domain.WriteResult, error) {
	if patch.IsEmpty() {
		n, err := r.coll.CountDocuments(ctx, byID(id))
		if err != nil {
			return nil, err
		}
		return domain.UpdateResult(n, 0), nil
	}

	logger.DatabaseCall(ctx, "updateOne", postsCollection, "id", id)
	res, err := r.coll.UpdateOne(ctx, byID(id), patchUpdate(patch))
	if err != nil {
		logger.DatabaseResult(ctx, "updateOne", 0, err)
		return nil, err
	}
	logger.DatabaseResult(ctx, "updateOne", res.ModifiedCount, nil)
	return domain.UpdateResult(res.MatchedCount, res.ModifiedCount), nil
}

func (r *postRepository) Delete(ctx context.Context, id string) (*domain.WriteResult, error) {
	logger.DatabaseCall(ctx, "deleteOne", postsCollection, "id", id)
	res, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		logger.DatabaseResult(ctx, "deleteOne", 0, err)
		return nil, err
	}
	logger.DatabaseResult(ctx, "deleteOne", res.DeletedCount, nil)
	return domain.DeleteResult(res.DeletedCount), nil
}
