package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type volunteerRequestRepository struct {
	client   *mongo.Client
	requests *mongo.Collection
	posts    *mongo.Collection
}

func (r *volunteerRequestRepository) GetByID(ctx context.Context, id string) (*domain.VolunteerRequest, error) {
	var req domain.VolunteerRequest
	err := r.requests.FindOne(ctx, byID(id)).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("volunteer request %s: %w", id, domain.ErrRequestNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *volunteerRequestRepository) ListByVolunteer(ctx context.Context, email string) ([]domain.VolunteerRequest, error) {
	return r.find(ctx, bson.M{"volunteerEmail": email})
}

func (r *volunteerRequestRepository) ListByOrganizer(ctx context.Context, email string) ([]domain.VolunteerRequest, error) {
	return r.find(ctx, bson.M{"organizerEmail": email})
}

func (r *volunteerRequestRepository) find(ctx context.Context, filter bson.M) ([]domain.VolunteerRequest, error) {
	logger.DatabaseCall(ctx, "find", requestsCollection)
	cursor, err := r.requests.Find(ctx, filter)
	if err != nil {
		logger.DatabaseResult(ctx, "find", 0, err)
		return nil, err
	}

	reqs := []domain.VolunteerRequest{}
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	logger.DatabaseResult(ctx, "find", int64(len(reqs)), nil)
	return reqs, nil
}

func (r *volunteerRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.WriteResult, error) {
	logger.DatabaseCall(ctx, "updateOne", requestsCollection, "id", id, "status", status)
	res, err := r.requests.UpdateOne(ctx, byID(id), bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		logger.DatabaseResult(ctx, "updateOne", 0, err)
		return nil, err
	}
	logger.DatabaseResult(ctx, "updateOne", res.ModifiedCount, nil)
	return domain.UpdateResult(res.MatchedCount, res.ModifiedCount), nil
}

func (r *volunteerRequestRepository) CreateAndReserve(ctx context.Context, req *domain.VolunteerRequest) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	logger.DatabaseCall(ctx, "reserve", postsCollection, "post_id", req.PostID)
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var post domain.Post
		err := r.posts.FindOneAndUpdate(sc, reserveFilter(req.PostID), adjustSlots(-1),
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&post)
		if errors.Is(err, mongo.ErrNoDocuments) {
			n, err := r.posts.CountDocuments(sc, byID(req.PostID))
			if err != nil {
				return nil, err
			}
			if n == 0 {
				return nil, fmt.Errorf("post %s: %w", req.PostID, domain.ErrNotFound)
			}
			return nil, domain.ErrNoCapacity
		}
		if err != nil {
			return nil, err
		}

		req.ReserveFrom(&post)
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		if req.Status == "" {
			req.Status = domain.RequestStatusPending
		}
		req.CreatedAt = time.Now().UTC()

		if _, err := r.requests.InsertOne(sc, req); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrAlreadyApplied
			}
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		logger.DatabaseResult(ctx, "reserve", 0, err)
		return err
	}
	logger.DatabaseResult(ctx, "reserve", 1, nil, "request_id", req.ID)
	return nil
}

func (r *volunteerRequestRepository) DeleteAndRelease(ctx context.Context, id string, authorize repository.AuthorizeFunc) (*domain.VolunteerRequest, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	logger.DatabaseCall(ctx, "release", requestsCollection, "id", id)
	var released domain.VolunteerRequest
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		released = domain.VolunteerRequest{}
		err := r.requests.FindOne(sc, byID(id)).Decode(&released)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		if err != nil {
			return nil, err
		}

		if authorize != nil {
			if err := authorize(&released); err != nil {
				return nil, err
			}
		}

		res, err := r.requests.DeleteOne(sc, byID(id))
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrRequestNotFound
		}

		if _, err := r.posts.UpdateOne(sc, byID(released.PostID), adjustSlots(1)); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		logger.DatabaseResult(ctx, "release", 0, err)
		return nil, err
	}
	logger.DatabaseResult(ctx, "release", 1, nil)
	return &released, nil
}
