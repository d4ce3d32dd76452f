package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	postsCollection    = "posts"
	requestsCollection = "volunteerRequests"
	contactsCollection = "contactMessages"
)

// Connect opens a client pinned to the stable server API and verifies it
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// NewStore wires the MongoDB-backed repositories onto one database
func NewStore(client *mongo.Client, database string) *repository.Store {
	db := client.Database(database)
	posts := db.Collection(postsCollection)
	return &repository.Store{
		Posts: &postRepository{coll: posts},
		Requests: &volunteerRequestRepository{
			client:   client,
			requests: db.Collection(requestsCollection),
			posts:    posts,
		},
		Contacts: &contactMessageRepository{coll: db.Collection(contactsCollection)},
		Health:   &healthChecker{client: client},
	}
}

// EnsureIndexes creates the lookup indexes and the one-application-per-post
// uniqueness constraint.
func EnsureIndexes(ctx context.Context, client *mongo.Client, database string) error {
	db := client.Database(database)

	_, err := db.Collection(postsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "deadline", Value: 1}}},
		{Keys: bson.D{{Key: "organizer.email", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create post indexes: %w", err)
	}

	_, err = db.Collection(requestsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "postId", Value: 1}, {Key: "volunteerEmail", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "volunteerEmail", Value: 1}}},
		{Keys: bson.D{{Key: "organizerEmail", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create request indexes: %w", err)
	}
	return nil
}

type healthChecker struct {
	client *mongo.Client
}

func (h *healthChecker) Ping(ctx context.Context) error {
	return h.client.Ping(ctx, readpref.Primary())
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

// titleFilter matches the search term literally and case-insensitively
func titleFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	return bson.M{"postTitle": bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}}
}

func reserveFilter(postID string) bson.M {
	return bson.M{"_id": postID, "volunteersNeeded": bson.M{"$gt": 0}}
}

func adjustSlots(delta int) bson.M {
	return bson.M{"$inc": bson.M{"volunteersNeeded": delta}}
}

func deadlineBetween(from, to time.Time) bson.M {
	return bson.M{"deadline": bson.M{"$gte": from, "$lt": to}}
}

// patchUpdate builds a $set covering only the supplied fields. Extra keys
// live at the top level of the document.
func patchUpdate(patch *domain.PostPatch) bson.M {
	set := bson.M{}
	for k, v := range patch.Extra {
		set[k] = v
	}
	if patch.PostTitle != nil {
		set["postTitle"] = *patch.PostTitle
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Thumbnail != nil {
		set["thumbnail"] = *patch.Thumbnail
	}
	if patch.Deadline != nil {
		set["deadline"] = *patch.Deadline
	}
	if patch.VolunteersNeeded != nil {
		set["volunteersNeeded"] = *patch.VolunteersNeeded
	}
	return bson.M{"$set": set}
}
