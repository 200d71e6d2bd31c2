package repository

import (
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/app/models"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EnrollmentMongoRepository struct {
	Collection *mongo.Collection
}

var _ contracts.EnrollmentRepository = (*EnrollmentMongoRepository)(nil)

func NewEnrollmentMongoRepository(db *mongo.Client, dbName string) *EnrollmentMongoRepository {
	return &EnrollmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionEnrollments),
	}
}

func (r *EnrollmentMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "provider", Value: 1}, {Key: "providerEnrollmentId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *EnrollmentMongoRepository) FindByProviderEnrollmentID(ctx context.Context, provider, providerEnrollmentID string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	filter := bson.M{"provider": provider, "providerEnrollmentId": providerEnrollmentID}
	err := r.Collection.FindOne(ctx, filter).Decode(&enrollment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &enrollment, nil
}

func (r *EnrollmentMongoRepository) FindActive(ctx context.Context, provider string, at time.Time) ([]models.Enrollment, error) {
	filter := bson.M{
		"provider":  provider,
		"startDate": bson.M{"$lte": at},
		"$or": []bson.M{
			{"endDate": bson.M{"$gte": at}},
			{"endDate": time.Time{}},
		},
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	enrollments := make([]models.Enrollment, 0)
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return enrollments, nil
}

func (r *EnrollmentMongoRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	_, err := r.Collection.InsertOne(ctx, enrollment)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}
