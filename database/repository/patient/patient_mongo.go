package patientRepo

import (
	"context"
	"fmt"
	"time"

	"medicore/database"
	"medicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPatientRepo implements PatientRepository using MongoDB.
type MongoPatientRepo struct {
	coll *mongo.Collection
}

func NewMongoPatientRepo() *MongoPatientRepo {
	return &MongoPatientRepo{
		coll: database.DB().Collection("patients"),
	}
}

func (repo *MongoPatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Patient
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient %s: %w", id, err)
	}
	return &p, nil
}

// GetByPhone resolves a patient by phone number. Records created through the
// different portals keyed the number under different field names, so the
// lookup matches any of them.
func (repo *MongoPatientRepo) GetByPhone(ctx context.Context, phone string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"$or": []bson.M{
			{"phone": phone},
			{"phoneNumber": phone},
			{"contact": phone},
		},
	}

	var p models.Patient
	err := repo.coll.FindOne(ctx, filter).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient by phone: %w", err)
	}
	return &p, nil
}
