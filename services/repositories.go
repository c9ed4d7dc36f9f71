package services

import (
	"ClinicHub/models"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvoiceRepository is the document store contract the invoice services need.
// Errors are expected to carry a db.ErrorKind.
type InvoiceRepository interface {
	Insert(ctx context.Context, invoice *models.Invoice) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	Find(ctx context.Context, filter models.InvoiceFilter, skip, limit int64) ([]models.Invoice, error)
	Count(ctx context.Context, filter models.InvoiceFilter) (int64, error)
	FindOverdue(ctx context.Context, now time.Time) ([]models.Invoice, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update models.InvoiceUpdate) (*models.Invoice, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	Aggregate(ctx context.Context, now time.Time) (*models.InvoiceAggregate, error)
}

type PatientRepository interface {
	FindSummaries(ctx context.Context, ids []primitive.ObjectID, withAddress bool) (map[primitive.ObjectID]models.PatientSummary, error)
}

type SampleTypeRepository interface {
	Insert(ctx context.Context, sampleType *models.SampleType) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.SampleType, error)
	Find(ctx context.Context, filter models.SampleTypeFilter, skip, limit int64) ([]models.SampleType, error)
	Count(ctx context.Context, filter models.SampleTypeFilter) (int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update models.SampleTypeUpdate) (*models.SampleType, error)
	Toggle(ctx context.Context, id primitive.ObjectID, now time.Time) (*models.SampleType, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.SampleType, error)
	Categories(ctx context.Context) ([]models.SampleCategory, error)
	Stats(ctx context.Context) (*models.SampleTypeStats, error)
}
