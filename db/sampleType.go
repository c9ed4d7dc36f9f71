package db

import (
	"ClinicHub/models"
	"ClinicHub/util"
	"context"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SampleTypeStore struct {
	coll *mongo.Collection
}

func NewSampleTypeStore(database *mongo.Database) *SampleTypeStore {
	return &SampleTypeStore{coll: database.Collection(util.SampleTypeCollection)}
}

// Insert relies on the unique indexes on name and code; a violation comes
// back as KindDuplicateKey.
func (s *SampleTypeStore) Insert(ctx context.Context, sampleType *models.SampleType) error {
	res, err := s.coll.InsertOne(ctx, sampleType)
	if err != nil {
		return wrap("insert sample type", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		sampleType.ID = id
	}
	return nil
}

func (s *SampleTypeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SampleType, error) {
	var sampleType models.SampleType
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&sampleType); err != nil {
		return nil, wrap("find sample type", err)
	}
	return &sampleType, nil
}

func (s *SampleTypeStore) Find(ctx context.Context, filter models.SampleTypeFilter, skip, limit int64) ([]models.SampleType, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := s.coll.Find(ctx, buildSampleTypeFilter(filter), opts)
	if err != nil {
		return nil, wrap("find sample types", err)
	}
	sampleTypes := []models.SampleType{}
	if err := cursor.All(ctx, &sampleTypes); err != nil {
		return nil, wrap("find sample types", err)
	}
	return sampleTypes, nil
}

func (s *SampleTypeStore) Count(ctx context.Context, filter models.SampleTypeFilter) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, buildSampleTypeFilter(filter))
	if err != nil {
		return 0, wrap("count sample types", err)
	}
	return count, nil
}

func (s *SampleTypeStore) UpdateByID(ctx context.Context, id primitive.ObjectID, update models.SampleTypeUpdate) (*models.SampleType, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sampleType models.SampleType
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, buildSampleTypeUpdate(update), opts).Decode(&sampleType)
	if err != nil {
		return nil, wrap("update sample type", err)
	}
	return &sampleType, nil
}

// Toggle flips isActive server side with a pipeline update so concurrent
// toggles never read a stale value.
func (s *SampleTypeStore) Toggle(ctx context.Context, id primitive.ObjectID, now time.Time) (*models.SampleType, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "isActive", Value: bson.D{{Key: "$not", Value: bson.A{"$isActive"}}}},
			{Key: "updated_at", Value: now},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sampleType models.SampleType
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&sampleType); err != nil {
		return nil, wrap("toggle sample type", err)
	}
	return &sampleType, nil
}

func (s *SampleTypeStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.SampleType, error) {
	var sampleType models.SampleType
	if err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&sampleType); err != nil {
		return nil, wrap("delete sample type", err)
	}
	return &sampleType, nil
}

// Categories returns the distinct categories in use, sorted.
func (s *SampleTypeStore) Categories(ctx context.Context) ([]models.SampleCategory, error) {
	values, err := s.coll.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, wrap("distinct categories", err)
	}
	categories := make([]models.SampleCategory, 0, len(values))
	for _, v := range values {
		if c, ok := v.(string); ok {
			categories = append(categories, models.SampleCategory(c))
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories, nil
}

type sampleTypeFacets struct {
	Totals []struct {
		Total  int64 `bson:"total"`
		Active int64 `bson:"active"`
	} `bson:"totals"`
	ByCategory []models.CategoryCount `bson:"byCategory"`
}

func (s *SampleTypeStore) Stats(ctx context.Context) (*models.SampleTypeStats, error) {
	cursor, err := s.coll.Aggregate(ctx, sampleTypeStatsPipeline())
	if err != nil {
		return nil, wrap("aggregate sample types", err)
	}
	var facets []sampleTypeFacets
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, wrap("decode sample type stats", err)
	}

	stats := &models.SampleTypeStats{ByCategory: []models.CategoryCount{}}
	if len(facets) == 0 {
		return stats, nil
	}
	if len(facets[0].Totals) > 0 {
		stats.TotalSampleTypes = facets[0].Totals[0].Total
		stats.ActiveSampleTypes = facets[0].Totals[0].Active
	}
	if facets[0].ByCategory != nil {
		stats.ByCategory = facets[0].ByCategory
	}
	return stats, nil
}

func buildSampleTypeFilter(f models.SampleTypeFilter) bson.M {
	filter := bson.M{}
	if f.Category != nil {
		filter["category"] = *f.Category
	}
	if f.IsActive != nil {
		filter["isActive"] = *f.IsActive
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"code": pattern},
			bson.M{"description": pattern},
		}
	}
	return filter
}

func buildSampleTypeUpdate(u models.SampleTypeUpdate) bson.M {
	set := bson.M{"updated_at": u.UpdatedAt}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Code != nil {
		set["code"] = *u.Code
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.IsActive != nil {
		set["isActive"] = *u.IsActive
	}
	return bson.M{"$set": set}
}

func sampleTypeStatsPipeline() mongo.Pipeline {
	activeOne := bson.D{{Key: "$cond", Value: bson.A{"$isActive", 1, 0}}}
	return mongo.Pipeline{
		{{Key: "$facet", Value: bson.D{
			{Key: "totals", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: nil},
					{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
					{Key: "active", Value: bson.D{{Key: "$sum", Value: activeOne}}},
				}}},
			}},
			{Key: "byCategory", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: "$category"},
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
					{Key: "active", Value: bson.D{{Key: "$sum", Value: activeOne}}},
				}}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
			}},
		}}},
	}
}
