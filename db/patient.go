package db

import (
	"ClinicHub/models"
	"ClinicHub/util"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PatientStore struct {
	coll *mongo.Collection
}

func NewPatientStore(database *mongo.Database) *PatientStore {
	return &PatientStore{coll: database.Collection(util.PatientCollection)}
}

// FindSummaries loads the invoice-facing fields of the given patients in one
// query. Patients that do not exist are simply absent from the result.
func (s *PatientStore) FindSummaries(ctx context.Context, ids []primitive.ObjectID, withAddress bool) (map[primitive.ObjectID]models.PatientSummary, error) {
	result := make(map[primitive.ObjectID]models.PatientSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	projection := bson.M{"name": 1, "email": 1, "phone": 1}
	if withAddress {
		projection["address"] = 1
	}
	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, wrap("find patients", err)
	}
	var summaries []models.PatientSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, wrap("find patients", err)
	}
	for _, p := range summaries {
		result[p.ID] = p
	}
	return result, nil
}
