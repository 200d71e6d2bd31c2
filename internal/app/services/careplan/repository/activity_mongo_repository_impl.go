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

type ActivityMongoRepository struct {
	Collection *mongo.Collection
}

var _ contracts.ActivityRepository = (*ActivityMongoRepository)(nil)

func NewActivityMongoRepository(db *mongo.Client, dbName string) *ActivityMongoRepository {
	return &ActivityMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionActivities),
	}
}

func (r *ActivityMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "provider", Value: 1}, {Key: "enrollmentId", Value: 1}, {Key: "scheduledAt", Value: 1}},
	})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// Upsert writes the activity under its occurrence key in a single pipeline
// update. Status and completion fields of a Completed document are kept.
func (r *ActivityMongoRepository) Upsert(ctx context.Context, activity *models.CareplanActivity) error {
	activity.ID = activity.Key()

	_, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": activity.ID},
		mongo.Pipeline{{{Key: "$set", Value: activityUpsertFields(activity)}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func activityUpsertFields(activity *models.CareplanActivity) bson.D {
	isCompleted := bson.D{{Key: "$eq", Value: bson.A{"$status", models.ProgressStatusCompleted}}}
	keepWhenCompleted := func(field string, value interface{}) bson.D {
		return bson.D{{Key: "$cond", Value: bson.A{isCompleted, "$" + field, literal(value)}}}
	}

	return bson.D{
		{Key: "enrollmentId", Value: literal(activity.EnrollmentID)},
		{Key: "provider", Value: literal(activity.Provider)},
		{Key: "type", Value: literal(activity.Type)},
		{Key: "category", Value: literal(activity.Category)},
		{Key: "providerActionId", Value: literal(activity.ProviderActionID)},
		{Key: "title", Value: literal(activity.Title)},
		{Key: "description", Value: literal(activity.Description)},
		{Key: "url", Value: literal(activity.URL)},
		{Key: "language", Value: literal(activity.Language)},
		{Key: "scheduledAt", Value: literal(activity.ScheduledAt)},
		{Key: "sequence", Value: literal(activity.Sequence)},
		{Key: "frequency", Value: literal(activity.Frequency)},
		{Key: "comments", Value: literal(activity.Comments)},
		{Key: "rawContent", Value: literal(activity.RawContent)},
		{Key: "planCode", Value: literal(activity.PlanCode)},
		{Key: "participantId", Value: literal(activity.ParticipantID)},
		{Key: "timeSlot", Value: literal(activity.TimeSlot)},
		{Key: "isRegistrationActivity", Value: literal(activity.IsRegistrationActivity)},
		{Key: "completedAt", Value: keepWhenCompleted("completedAt", activity.CompletedAt)},
		{Key: "status", Value: keepWhenCompleted("status", activity.Status)},
		{Key: "createdAt", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$createdAt", activity.CreatedAt}}}},
		{Key: "updatedAt", Value: literal(activity.UpdatedAt)},
	}
}

func literal(value interface{}) bson.D {
	return bson.D{{Key: "$literal", Value: value}}
}
