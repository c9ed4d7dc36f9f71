package migrations

import (
	"ClinicHub/util"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BackfillSampleTypeActive sets isActive on sample types created before the
// field existed.
func BackfillSampleTypeActive(ctx context.Context, database *mongo.Database) (int, error) {
	result, err := database.Collection(util.SampleTypeCollection).UpdateMany(
		ctx,
		bson.M{"isActive": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"isActive": true}},
	)
	if err != nil {
		return 0, err
	}
	return int(result.ModifiedCount), nil
}
