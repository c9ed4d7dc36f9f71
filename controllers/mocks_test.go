package controllers

import (
	"ClinicHub/models"
	"ClinicHub/services"
	"context"
	"errors"
)

var (
	_ InvoiceService    = (*stubInvoiceService)(nil)
	_ InvoiceReporter   = (*stubInvoiceReporter)(nil)
	_ SampleTypeService = (*stubSampleTypeService)(nil)
	_ Pinger            = (*stubPinger)(nil)
)

var errNotStubbed = errors.New("not stubbed")

type stubInvoiceService struct {
	CreateFunc      func(ctx context.Context, req services.CreateInvoiceRequest) (*models.Invoice, error)
	ListFunc        func(ctx context.Context, params services.InvoiceListParams) (*services.PageResult[models.Invoice], error)
	GetByIDFunc     func(ctx context.Context, id string) (*models.Invoice, error)
	UpdateFunc      func(ctx context.Context, id string, req services.UpdateInvoiceRequest) (*models.Invoice, error)
	MarkPaidFunc    func(ctx context.Context, id string) (*models.Invoice, error)
	ListOverdueFunc func(ctx context.Context) ([]models.Invoice, error)
	DeleteFunc      func(ctx context.Context, id string) (*models.Invoice, error)
}

func (s *stubInvoiceService) Create(ctx context.Context, req services.CreateInvoiceRequest) (*models.Invoice, error) {
	if s.CreateFunc != nil {
		return s.CreateFunc(ctx, req)
	}
	return nil, errNotStubbed
}

func (s *stubInvoiceService) List(ctx context.Context, params services.InvoiceListParams) (*services.PageResult[models.Invoice], error) {
	if s.ListFunc != nil {
		return s.ListFunc(ctx, params)
	}
	return nil, errNotStubbed
}

func (s *stubInvoiceService) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	if s.GetByIDFunc != nil {
		return s.GetByIDFunc(ctx, id)
	}
	return nil, errNotStubbed
}

func (s *stubInvoiceService) Update(ctx context.Context, id string, req services.UpdateInvoiceRequest) (*models.Invoice, error) {
	if s.UpdateFunc != nil {
		return s.UpdateFunc(ctx, id, req)
	}
	return nil, errNotStubbed
}

func (s *stubInvoiceService) MarkPaid(ctx context.Context, id string) (*models.Invoice, error) {
	if s.MarkPaidFunc != nil {
		return s.MarkPaidFunc(ctx, id)
	}
	return nil, errNotStubbed
}

func (s *stubInvoiceService) ListOverdue(ctx context.Context) ([]models.Invoice, error) {
	if s.ListOverdueFunc != nil {
		return s.ListOverdueFunc(ctx)
	}
	return nil, errNotStubbed
}

func (s *stubInvoiceService) Delete(ctx context.Context, id string) (*models.Invoice, error) {
	if s.DeleteFunc != nil {
		return s.DeleteFunc(ctx, id)
	}
	return nil, errNotStubbed
}

type stubInvoiceReporter struct {
	stats *models.InvoiceStats
	err   error
}

func (s *stubInvoiceReporter) GetStats(ctx context.Context) (*models.InvoiceStats, error) {
	return s.stats, s.err
}

type stubSampleTypeService struct {
	CreateFunc         func(ctx context.Context, req services.CreateSampleTypeRequest) (*models.SampleType, error)
	ListFunc           func(ctx context.Context, params services.SampleTypeListParams) (*services.PageResult[models.SampleType], error)
	GetByIDFunc        func(ctx context.Context, id string) (*models.SampleType, error)
	UpdateFunc         func(ctx context.Context, id string, req services.UpdateSampleTypeRequest) (*models.SampleType, error)
	ToggleStatusFunc   func(ctx context.Context, id string) (*models.SampleType, error)
	DeleteFunc         func(ctx context.Context, id string) (*models.SampleType, error)
	StatsFunc          func(ctx context.Context) (*models.SampleTypeStats, error)
	ListCategoriesFunc func(ctx context.Context) ([]models.SampleCategory, error)
}

func (s *stubSampleTypeService) Create(ctx context.Context, req services.CreateSampleTypeRequest) (*models.SampleType, error) {
	if s.CreateFunc != nil {
		return s.CreateFunc(ctx, req)
	}
	return nil, errNotStubbed
}

func (s *stubSampleTypeService) List(ctx context.Context, params services.SampleTypeListParams) (*services.PageResult[models.SampleType], error) {
	if s.ListFunc != nil {
		return s.ListFunc(ctx, params)
	}
	return nil, errNotStubbed
}

func (s *stubSampleTypeService) GetByID(ctx context.Context, id string) (*models.SampleType, error) {
	if s.GetByIDFunc != nil {
		return s.GetByIDFunc(ctx, id)
	}
	return nil, errNotStubbed
}

func (s *stubSampleTypeService) Update(ctx context.Context, id string, req services.UpdateSampleTypeRequest) (*models.SampleType, error) {
	if s.UpdateFunc != nil {
		return s.UpdateFunc(ctx, id, req)
	}
	return nil, errNotStubbed
}

func (s *stubSampleTypeService) ToggleStatus(ctx context.Context, id string) (*models.SampleType, error) {
	if s.ToggleStatusFunc != nil {
		return s.ToggleStatusFunc(ctx, id)
	}
	return nil, errNotStubbed
}

func (s *stubSampleTypeService) Delete(ctx context.Context, id string) (*models.SampleType, error) {
	if s.DeleteFunc != nil {
		return s.DeleteFunc(ctx, id)
	}
	return nil, errNotStubbed
}

func (s *stubSampleTypeService) Stats(ctx context.Context) (*models.SampleTypeStats, error) {
	if s.StatsFunc != nil {
		return s.StatsFunc(ctx)
	}
	return nil, errNotStubbed
}

func (s *stubSampleTypeService) ListCategories(ctx context.Context) ([]models.SampleCategory, error) {
	if s.ListCategoriesFunc != nil {
		return s.ListCategoriesFunc(ctx)
	}
	return nil, errNotStubbed
}

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error {
	return p.err
}
