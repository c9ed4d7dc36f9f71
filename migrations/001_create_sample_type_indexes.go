package migrations

import (
	"ClinicHub/util"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateSampleTypeIndexes enforces unique sample type names and codes.
func CreateSampleTypeIndexes(ctx context.Context, database *mongo.Database) (int, error) {
	names, err := database.Collection(util.SampleTypeCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("uniq_name").SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetName("uniq_code").SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "isActive", Value: 1}}, Options: options.Index().SetName("category_active")},
	})
	return len(names), err
}
