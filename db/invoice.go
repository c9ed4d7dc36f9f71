package db

import (
	"ClinicHub/models"
	"ClinicHub/util"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const monthlyRevenueBuckets = 12

type InvoiceStore struct {
	coll *mongo.Collection
}

func NewInvoiceStore(database *mongo.Database) *InvoiceStore {
	return &InvoiceStore{coll: database.Collection(util.InvoiceCollection)}
}

func (s *InvoiceStore) Insert(ctx context.Context, invoice *models.Invoice) error {
	res, err := s.coll.InsertOne(ctx, invoice)
	if err != nil {
		return wrap("insert invoice", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		invoice.ID = id
	}
	return nil
}

func (s *InvoiceStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&invoice)
	if err != nil {
		return nil, wrap("find invoice", err)
	}
	return &invoice, nil
}

// Find returns one page of invoices, newest first.
func (s *InvoiceStore) Find(ctx context.Context, filter models.InvoiceFilter, skip, limit int64) ([]models.Invoice, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	return s.find(ctx, "find invoices", buildInvoiceFilter(filter), opts)
}

func (s *InvoiceStore) Count(ctx context.Context, filter models.InvoiceFilter) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, buildInvoiceFilter(filter))
	if err != nil {
		return 0, wrap("count invoices", err)
	}
	return count, nil
}

// FindOverdue returns pending invoices due strictly before now, latest due date first.
func (s *InvoiceStore) FindOverdue(ctx context.Context, now time.Time) ([]models.Invoice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: -1}})
	return s.find(ctx, "find overdue invoices", overdueFilter(now), opts)
}

func (s *InvoiceStore) UpdateByID(ctx context.Context, id primitive.ObjectID, update models.InvoiceUpdate) (*models.Invoice, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var invoice models.Invoice
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, buildInvoiceUpdate(update), opts).Decode(&invoice)
	if err != nil {
		return nil, wrap("update invoice", err)
	}
	return &invoice, nil
}

func (s *InvoiceStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&invoice)
	if err != nil {
		return nil, wrap("delete invoice", err)
	}
	return &invoice, nil
}

type invoiceFacets struct {
	ByStatus []struct {
		Status models.InvoiceStatus `bson:"_id"`
		Count  int64                `bson:"count"`
	} `bson:"byStatus"`
	Overdue []struct {
		Count int64 `bson:"count"`
	} `bson:"overdue"`
	Revenue []struct {
		Total float64 `bson:"total"`
	} `bson:"revenue"`
	Monthly []models.MonthlyRevenue `bson:"monthly"`
}

// Aggregate computes every reporting figure in a single $facet pass.
func (s *InvoiceStore) Aggregate(ctx context.Context, now time.Time) (*models.InvoiceAggregate, error) {
	cursor, err := s.coll.Aggregate(ctx, invoiceStatsPipeline(now))
	if err != nil {
		return nil, wrap("aggregate invoices", err)
	}
	var facets []invoiceFacets
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, wrap("decode invoice stats", err)
	}

	result := &models.InvoiceAggregate{
		StatusCounts:   make(map[models.InvoiceStatus]int64),
		MonthlyRevenue: []models.MonthlyRevenue{},
	}
	if len(facets) == 0 {
		return result, nil
	}
	facet := facets[0]
	for _, group := range facet.ByStatus {
		result.StatusCounts[group.Status] += group.Count
	}
	if len(facet.Overdue) > 0 {
		result.Overdue = facet.Overdue[0].Count
	}
	if len(facet.Revenue) > 0 {
		result.Revenue = facet.Revenue[0].Total
	}
	if facet.Monthly != nil {
		result.MonthlyRevenue = facet.Monthly
	}
	return result, nil
}

func (s *InvoiceStore) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]models.Invoice, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrap(op, err)
	}
	invoices := []models.Invoice{}
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, wrap(op, err)
	}
	return invoices, nil
}

func buildInvoiceFilter(f models.InvoiceFilter) bson.M {
	filter := bson.M{}
	if f.Status != nil {
		filter["status"] = *f.Status
	}
	if f.PatientID != nil {
		filter["patient"] = *f.PatientID
	}
	if f.DateRange != nil {
		created := bson.M{}
		if !f.DateRange.Start.IsZero() {
			created["$gte"] = f.DateRange.Start
		}
		if !f.DateRange.End.IsZero() {
			created["$lte"] = f.DateRange.End
		}
		if len(created) > 0 {
			filter["created_at"] = created
		}
	}
	return filter
}

func overdueFilter(now time.Time) bson.M {
	return bson.M{
		"status":   models.InvoicePending,
		"due_date": bson.M{"$lt": now},
	}
}

func buildInvoiceUpdate(u models.InvoiceUpdate) bson.M {
	set := bson.M{"updated_at": u.UpdatedAt}
	if u.Patient != nil {
		set["patient"] = *u.Patient
	}
	if u.Items != nil {
		set["items"] = *u.Items
	}
	if u.TotalAmount != nil {
		set["total_amount"] = *u.TotalAmount
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.DueDate != nil {
		set["due_date"] = *u.DueDate
	}
	if u.PaymentDate != nil {
		set["payment_date"] = *u.PaymentDate
	}
	if u.Notes != nil {
		set["notes"] = *u.Notes
	}

	update := bson.M{"$set": set}
	if u.ClearPaymentDate && u.PaymentDate == nil {
		update["$unset"] = bson.M{"payment_date": ""}
	}
	return update
}

func invoiceStatsPipeline(now time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$facet", Value: bson.D{
			{Key: "byStatus", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: "$status"},
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
				}}},
			}},
			{Key: "overdue", Value: bson.A{
				bson.D{{Key: "$match", Value: overdueFilter(now)}},
				bson.D{{Key: "$count", Value: "count"}},
			}},
			{Key: "revenue", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.M{"status": models.InvoicePaid}}},
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: nil},
					{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
				}}},
			}},
			{Key: "monthly", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.M{
					"status":       models.InvoicePaid,
					"payment_date": bson.M{"$type": "date"},
				}}},
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: bson.D{
						{Key: "year", Value: bson.D{{Key: "$year", Value: "$payment_date"}}},
						{Key: "month", Value: bson.D{{Key: "$month", Value: "$payment_date"}}},
					}},
					{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
				}}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: -1}, {Key: "_id.month", Value: -1}}}},
				bson.D{{Key: "$limit", Value: monthlyRevenueBuckets}},
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "_id", Value: 0},
					{Key: "year", Value: "$_id.year"},
					{Key: "month", Value: "$_id.month"},
					{Key: "revenue", Value: 1},
					{Key: "count", Value: 1},
				}}},
			}},
		}}},
	}
}
