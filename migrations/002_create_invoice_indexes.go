package migrations

import (
	"ClinicHub/util"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateInvoiceIndexes backs the overdue query, the newest-first listing and
// the patient filter.
func CreateInvoiceIndexes(ctx context.Context, database *mongo.Database) (int, error) {
	names, err := database.Collection(util.InvoiceCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "due_date", Value: -1}}, Options: options.Index().SetName("status_due_date")},
		{Keys: bson.D{{Key: "created_at", Value: -1}}, Options: options.Index().SetName("created_at")},
		{Keys: bson.D{{Key: "patient", Value: 1}}, Options: options.Index().SetName("patient")},
	})
	return len(names), err
}
