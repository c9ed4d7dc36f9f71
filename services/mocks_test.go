package services

import (
	"ClinicHub/db"
	"ClinicHub/models"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ InvoiceRepository    = (*fakeInvoiceRepo)(nil)
	_ PatientRepository    = (*fakePatientRepo)(nil)
	_ SampleTypeRepository = (*fakeSampleTypeRepo)(nil)
)

func notFoundErr(op string) error {
	return &db.Error{Kind: db.KindNotFound, Op: op}
}

// fakeInvoiceRepo is an in-memory InvoiceRepository. Setting err makes every
// call fail with it.
type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[primitive.ObjectID]models.Invoice
	err      error
}

func newFakeInvoiceRepo(invoices ...models.Invoice) *fakeInvoiceRepo {
	repo := &fakeInvoiceRepo{invoices: make(map[primitive.ObjectID]models.Invoice)}
	for _, inv := range invoices {
		if inv.ID.IsZero() {
			inv.ID = primitive.NewObjectID()
		}
		repo.invoices[inv.ID] = inv
	}
	return repo
}

func (r *fakeInvoiceRepo) Insert(ctx context.Context, invoice *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if invoice.ID.IsZero() {
		invoice.ID = primitive.NewObjectID()
	}
	r.invoices[invoice.ID] = *invoice
	return nil
}

func (r *fakeInvoiceRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	inv, ok := r.invoices[id]
	if !ok {
		return nil, notFoundErr("find invoice")
	}
	return &inv, nil
}

func (r *fakeInvoiceRepo) Find(ctx context.Context, filter models.InvoiceFilter, skip, limit int64) ([]models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	matched := r.matching(filter)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.Hex() > matched[j].ID.Hex()
	})
	return paginate(matched, skip, limit), nil
}

func (r *fakeInvoiceRepo) Count(ctx context.Context, filter models.InvoiceFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.matching(filter))), nil
}

func (r *fakeInvoiceRepo) FindOverdue(ctx context.Context, now time.Time) ([]models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	overdue := []models.Invoice{}
	for _, inv := range r.invoices {
		if inv.IsOverdue(now) {
			overdue = append(overdue, inv)
		}
	}
	sort.Slice(overdue, func(i, j int) bool { return overdue[i].DueDate.After(overdue[j].DueDate) })
	return overdue, nil
}

func (r *fakeInvoiceRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, update models.InvoiceUpdate) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	inv, ok := r.invoices[id]
	if !ok {
		return nil, notFoundErr("update invoice")
	}
	if update.Patient != nil {
		inv.Patient = *update.Patient
	}
	if update.Items != nil {
		inv.Items = *update.Items
	}
	if update.TotalAmount != nil {
		inv.TotalAmount = *update.TotalAmount
	}
	if update.Status != nil {
		inv.Status = *update.Status
	}
	if update.DueDate != nil {
		inv.DueDate = *update.DueDate
	}
	if update.PaymentDate != nil {
		paid := *update.PaymentDate
		inv.PaymentDate = &paid
	} else if update.ClearPaymentDate {
		inv.PaymentDate = nil
	}
	if update.Notes != nil {
		inv.Notes = *update.Notes
	}
	inv.UpdatedAt = update.UpdatedAt
	r.invoices[id] = inv
	return &inv, nil
}

func (r *fakeInvoiceRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	inv, ok := r.invoices[id]
	if !ok {
		return nil, notFoundErr("delete invoice")
	}
	delete(r.invoices, id)
	return &inv, nil
}

func (r *fakeInvoiceRepo) Aggregate(ctx context.Context, now time.Time) (*models.InvoiceAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	agg := &models.InvoiceAggregate{StatusCounts: make(map[models.InvoiceStatus]int64)}
	monthly := make(map[[2]int]*models.MonthlyRevenue)
	for _, inv := range r.invoices {
		agg.StatusCounts[inv.Status]++
		if inv.IsOverdue(now) {
			agg.Overdue++
		}
		if inv.Status != models.InvoicePaid {
			continue
		}
		agg.Revenue += inv.TotalAmount
		if inv.PaymentDate == nil {
			continue
		}
		key := [2]int{inv.PaymentDate.Year(), int(inv.PaymentDate.Month())}
		bucket, ok := monthly[key]
		if !ok {
			bucket = &models.MonthlyRevenue{Year: key[0], Month: key[1]}
			monthly[key] = bucket
		}
		bucket.Revenue += inv.TotalAmount
		bucket.Count++
	}
	for _, bucket := range monthly {
		agg.MonthlyRevenue = append(agg.MonthlyRevenue, *bucket)
	}
	return agg, nil
}

func (r *fakeInvoiceRepo) get(id primitive.ObjectID) (models.Invoice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	return inv, ok
}

func (r *fakeInvoiceRepo) matching(filter models.InvoiceFilter) []models.Invoice {
	matched := []models.Invoice{}
	for _, inv := range r.invoices {
		if filter.Status != nil && inv.Status != *filter.Status {
			continue
		}
		if filter.PatientID != nil && inv.Patient != *filter.PatientID {
			continue
		}
		if filter.DateRange != nil {
			if !filter.DateRange.Start.IsZero() && inv.CreatedAt.Before(filter.DateRange.Start) {
				continue
			}
			if !filter.DateRange.End.IsZero() && inv.CreatedAt.After(filter.DateRange.End) {
				continue
			}
		}
		matched = append(matched, inv)
	}
	return matched
}

type fakePatientRepo struct {
	patients map[primitive.ObjectID]models.PatientSummary
	err      error
	calls    int
}

func newFakePatientRepo(patients ...models.PatientSummary) *fakePatientRepo {
	repo := &fakePatientRepo{patients: make(map[primitive.ObjectID]models.PatientSummary)}
	for _, p := range patients {
		repo.patients[p.ID] = p
	}
	return repo
}

func (r *fakePatientRepo) FindSummaries(ctx context.Context, ids []primitive.ObjectID, withAddress bool) (map[primitive.ObjectID]models.PatientSummary, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	result := make(map[primitive.ObjectID]models.PatientSummary)
	for _, id := range ids {
		p, ok := r.patients[id]
		if !ok {
			continue
		}
		if !withAddress {
			p.Address = nil
		}
		result[id] = p
	}
	return result, nil
}

// fakeSampleTypeRepo enforces unique name and code the way the store indexes do.
type fakeSampleTypeRepo struct {
	mu          sync.Mutex
	sampleTypes map[primitive.ObjectID]models.SampleType
	err         error
}

func newFakeSampleTypeRepo(sampleTypes ...models.SampleType) *fakeSampleTypeRepo {
	repo := &fakeSampleTypeRepo{sampleTypes: make(map[primitive.ObjectID]models.SampleType)}
	for _, st := range sampleTypes {
		if st.ID.IsZero() {
			st.ID = primitive.NewObjectID()
		}
		repo.sampleTypes[st.ID] = st
	}
	return repo
}

func (r *fakeSampleTypeRepo) duplicate(candidate models.SampleType) bool {
	for id, st := range r.sampleTypes {
		if id != candidate.ID && (st.Name == candidate.Name || st.Code == candidate.Code) {
			return true
		}
	}
	return false
}

func (r *fakeSampleTypeRepo) Insert(ctx context.Context, sampleType *models.SampleType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if r.duplicate(*sampleType) {
		return &db.Error{Kind: db.KindDuplicateKey, Op: "insert sample type"}
	}
	if sampleType.ID.IsZero() {
		sampleType.ID = primitive.NewObjectID()
	}
	r.sampleTypes[sampleType.ID] = *sampleType
	return nil
}

func (r *fakeSampleTypeRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SampleType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	st, ok := r.sampleTypes[id]
	if !ok {
		return nil, notFoundErr("find sample type")
	}
	return &st, nil
}

func (r *fakeSampleTypeRepo) Find(ctx context.Context, filter models.SampleTypeFilter, skip, limit int64) ([]models.SampleType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	matched := r.matching(filter)
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return paginate(matched, skip, limit), nil
}

func (r *fakeSampleTypeRepo) Count(ctx context.Context, filter models.SampleTypeFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.matching(filter))), nil
}

func (r *fakeSampleTypeRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, update models.SampleTypeUpdate) (*models.SampleType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	st, ok := r.sampleTypes[id]
	if !ok {
		return nil, notFoundErr("update sample type")
	}
	if update.Name != nil {
		st.Name = *update.Name
	}
	if update.Code != nil {
		st.Code = *update.Code
	}
	if update.Category != nil {
		st.Category = *update.Category
	}
	if update.Description != nil {
		st.Description = *update.Description
	}
	if update.IsActive != nil {
		st.IsActive = *update.IsActive
	}
	if r.duplicate(st) {
		return nil, &db.Error{Kind: db.KindDuplicateKey, Op: "update sample type"}
	}
	st.UpdatedAt = update.UpdatedAt
	r.sampleTypes[id] = st
	return &st, nil
}

func (r *fakeSampleTypeRepo) Toggle(ctx context.Context, id primitive.ObjectID, now time.Time) (*models.SampleType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	st, ok := r.sampleTypes[id]
	if !ok {
		return nil, notFoundErr("toggle sample type")
	}
	st.IsActive = !st.IsActive
	st.UpdatedAt = now
	r.sampleTypes[id] = st
	return &st, nil
}

func (r *fakeSampleTypeRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.SampleType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	st, ok := r.sampleTypes[id]
	if !ok {
		return nil, notFoundErr("delete sample type")
	}
	delete(r.sampleTypes, id)
	return &st, nil
}

func (r *fakeSampleTypeRepo) Categories(ctx context.Context) ([]models.SampleCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	seen := make(map[models.SampleCategory]bool)
	categories := []models.SampleCategory{}
	for _, st := range r.sampleTypes {
		if !seen[st.Category] {
			seen[st.Category] = true
			categories = append(categories, st.Category)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories, nil
}

func (r *fakeSampleTypeRepo) Stats(ctx context.Context) (*models.SampleTypeStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	stats := &models.SampleTypeStats{}
	byCategory := make(map[models.SampleCategory]*models.CategoryCount)
	for _, st := range r.sampleTypes {
		stats.TotalSampleTypes++
		group, ok := byCategory[st.Category]
		if !ok {
			group = &models.CategoryCount{Category: st.Category}
			byCategory[st.Category] = group
		}
		group.Count++
		if st.IsActive {
			stats.ActiveSampleTypes++
			group.Active++
		}
	}
	for _, group := range byCategory {
		stats.ByCategory = append(stats.ByCategory, *group)
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		if stats.ByCategory[i].Count != stats.ByCategory[j].Count {
			return stats.ByCategory[i].Count > stats.ByCategory[j].Count
		}
		return stats.ByCategory[i].Category < stats.ByCategory[j].Category
	})
	return stats, nil
}

func (r *fakeSampleTypeRepo) matching(filter models.SampleTypeFilter) []models.SampleType {
	matched := []models.SampleType{}
	term := strings.ToLower(filter.Search)
	for _, st := range r.sampleTypes {
		if filter.Category != nil && st.Category != *filter.Category {
			continue
		}
		if filter.IsActive != nil && st.IsActive != *filter.IsActive {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(st.Name), term) &&
			!strings.Contains(strings.ToLower(st.Code), term) &&
			!strings.Contains(strings.ToLower(st.Description), term) {
			continue
		}
		matched = append(matched, st)
	}
	return matched
}

func paginate[T any](items []T, skip, limit int64) []T {
	if skip >= int64(len(items)) {
		return []T{}
	}
	end := skip + limit
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[skip:end]
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
