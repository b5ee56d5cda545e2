package followupRepo

import (
	"context"
	"fmt"
	"time"

	"medicore/database"
	"medicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFollowUpRepo implements FollowUpRepository using MongoDB.
type MongoFollowUpRepo struct {
	coll *mongo.Collection
}

func NewMongoFollowUpRepo() *MongoFollowUpRepo {
	return &MongoFollowUpRepo{
		coll: database.DB().Collection("followup_requests"),
	}
}

func (repo *MongoFollowUpRepo) Create(ctx context.Context, req *models.FollowUpRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create follow-up request: %w", err)
	}
	return nil
}

func (repo *MongoFollowUpRepo) LatestPendingForPatient(ctx context.Context, patientID string) (*models.FollowUpRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"patientId": patientID,
		"status":    models.FollowUpStatusPending,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var req models.FollowUpRequest
	err := repo.coll.FindOne(ctx, filter, opts).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending follow-up: %w", err)
	}
	return &req, nil
}

func (repo *MongoFollowUpRepo) MarkBooked(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": models.FollowUpStatusBooked}}
	if _, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to mark follow-up %s booked: %w", id, err)
	}
	return nil
}
