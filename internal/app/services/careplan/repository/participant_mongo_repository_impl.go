package repository

import (
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/app/models"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ParticipantMongoRepository struct {
	Collection *mongo.Collection
}

var _ contracts.ParticipantRepository = (*ParticipantMongoRepository)(nil)

func NewParticipantMongoRepository(db *mongo.Client, dbName string) *ParticipantMongoRepository {
	return &ParticipantMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionParticipants),
	}
}

// EnsureIndexes makes (patientUserId, provider) unique so instances racing on
// the same registration cannot both persist it.
func (r *ParticipantMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "patientUserId", Value: 1}, {Key: "provider", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *ParticipantMongoRepository) FindByPatientUserID(ctx context.Context, patientUserID, provider string) (*models.Participant, error) {
	var participant models.Participant
	err := r.Collection.FindOne(ctx, bson.M{"patientUserId": patientUserID, "provider": provider}).Decode(&participant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &participant, nil
}

func (r *ParticipantMongoRepository) Create(ctx context.Context, participant *models.Participant) error {
	_, err := r.Collection.InsertOne(ctx, participant)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}
