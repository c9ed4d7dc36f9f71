package services

import (
	"ClinicHub/models"
	"ClinicHub/util"
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type LineItemRequest struct {
	Description string  `json:"description" validate:"required,max=200"`
	Quantity    int     `json:"quantity" validate:"gte=1"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

type CreateInvoiceRequest struct {
	Patient     string            `json:"patient" validate:"required,objectid"`
	Items       []LineItemRequest `json:"items" validate:"omitempty,max=100,dive"`
	TotalAmount *float64          `json:"total_amount" validate:"required,gte=0"`
	DueDate     string            `json:"due_date" validate:"required,date"`
	Notes       string            `json:"notes" validate:"max=1000"`
}

// UpdateInvoiceRequest is a partial update; nil fields are left untouched.
type UpdateInvoiceRequest struct {
	Patient     *string            `json:"patient" validate:"omitnil,objectid"`
	Items       *[]LineItemRequest `json:"items" validate:"omitnil,max=100,dive"`
	TotalAmount *float64           `json:"total_amount" validate:"omitnil,gte=0"`
	// Status may move to any value, including paid back to pending; payment_date follows it.
	Status      *string            `json:"status" validate:"omitnil,oneof=pending paid cancelled"`
	DueDate     *string            `json:"due_date" validate:"omitnil,date"`
	Notes       *string            `json:"notes" validate:"omitempty,max=1000"`
}

// InvoiceListParams holds the raw list filters. Empty values are ignored.
type InvoiceListParams struct {
	Status    string
	PatientID string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

type InvoiceService struct {
	invoices InvoiceRepository
	patients PatientRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewInvoiceService(invoices InvoiceRepository, patients PatientRepository, logger *zap.Logger) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{invoices: invoices, patients: patients, logger: logger, now: systemClock}
}

/*
* Validate the request
* New invoices always start as pending with no payment date
* Persist and attach the patient summary
 */
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*models.Invoice, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	patientID, _ := primitive.ObjectIDFromHex(req.Patient)
	dueDate, _ := ParseDate(req.DueDate)
	now := s.now()

	invoice := &models.Invoice{
		Patient:     patientID,
		Items:       toLineItems(req.Items),
		TotalAmount: *req.TotalAmount,
		Status:      models.InvoicePending,
		DueDate:     dueDate,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.invoices.Insert(ctx, invoice); err != nil {
		return nil, storeError(err, util.INVOICE_NOT_FOUND, util.INVOICE_ALREADY_EXISTS)
	}
	s.logger.Info("invoice created", zap.String("invoice_id", invoice.ID.Hex()), zap.String("patient_id", patientID.Hex()))

	s.attachAfterWrite(ctx, invoice)
	return invoice, nil
}

/*
* Validate and translate the filters
* Normalise paging, then fetch the page and the total
* Attach patient summaries without addresses
 */
func (s *InvoiceService) List(ctx context.Context, params InvoiceListParams) (*PageResult[models.Invoice], error) {
	filter, err := buildInvoiceFilter(params)
	if err != nil {
		return nil, err
	}
	page, pageSize := NormalizePage(params.Page, params.PageSize)

	invoices := []models.Invoice{}
	if skip, ok := skipFor(page, pageSize); ok {
		invoices, err = s.invoices.Find(ctx, filter, skip, int64(pageSize))
		if err != nil {
			return nil, util.InfrastructureError(err)
		}
	}
	total, err := s.invoices.Count(ctx, filter)
	if err != nil {
		return nil, util.InfrastructureError(err)
	}
	if err := s.attachPatients(ctx, invoices, false); err != nil {
		return nil, util.InfrastructureError(err)
	}
	return &PageResult[models.Invoice]{Items: invoices, Pagination: util.NewPagination(page, pageSize, total)}, nil
}

func (s *InvoiceService) GetByID(ctx context.Context, rawID string) (*models.Invoice, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, util.INVOICE_NOT_FOUND, util.INVOICE_ALREADY_EXISTS)
	}
	invoices := []models.Invoice{*invoice}
	if err := s.attachPatients(ctx, invoices, true); err != nil {
		return nil, util.InfrastructureError(err)
	}
	return &invoices[0], nil
}

/*
* Validate the id and the patch
* A status change to paid stamps the payment date, any other status clears it
* Apply the patch and return the stored result
 */
func (s *InvoiceService) Update(ctx context.Context, rawID string, req UpdateInvoiceRequest) (*models.Invoice, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	update, changed := s.buildUpdate(req)
	if !changed {
		return nil, util.ValidationError(util.NOTHING_TO_UPDATE)
	}
	invoice, err := s.invoices.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, storeError(err, util.INVOICE_NOT_FOUND, util.INVOICE_ALREADY_EXISTS)
	}
	s.logger.Info("invoice updated", zap.String("invoice_id", id.Hex()))

	s.attachAfterWrite(ctx, invoice)
	return invoice, nil
}

// MarkPaid unconditionally sets the invoice to paid and stamps the payment date.
func (s *InvoiceService) MarkPaid(ctx context.Context, rawID string) (*models.Invoice, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	paid := models.InvoicePaid
	invoice, err := s.invoices.UpdateByID(ctx, id, models.InvoiceUpdate{Status: &paid, PaymentDate: &now, UpdatedAt: now})
	if err != nil {
		return nil, storeError(err, util.INVOICE_NOT_FOUND, util.INVOICE_ALREADY_EXISTS)
	}
	s.logger.Info("invoice marked paid", zap.String("invoice_id", id.Hex()))

	s.attachAfterWrite(ctx, invoice)
	return invoice, nil
}

// ListOverdue returns pending invoices whose due date has passed, most
// recently due first.
func (s *InvoiceService) ListOverdue(ctx context.Context) ([]models.Invoice, error) {
	now := s.now()
	found, err := s.invoices.FindOverdue(ctx, now)
	if err != nil {
		return nil, util.InfrastructureError(err)
	}
	invoices := make([]models.Invoice, 0, len(found))
	for i := range found {
		if found[i].IsOverdue(now) {
			invoices = append(invoices, found[i])
		}
	}
	if err := s.attachPatients(ctx, invoices, false); err != nil {
		return nil, util.InfrastructureError(err)
	}
	return invoices, nil
}

// Delete removes the invoice and returns the removed record.
func (s *InvoiceService) Delete(ctx context.Context, rawID string) (*models.Invoice, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoices.DeleteByID(ctx, id)
	if err != nil {
		return nil, storeError(err, util.INVOICE_NOT_FOUND, util.INVOICE_ALREADY_EXISTS)
	}
	s.logger.Info("invoice deleted", zap.String("invoice_id", id.Hex()))
	return invoice, nil
}

func (s *InvoiceService) buildUpdate(req UpdateInvoiceRequest) (models.InvoiceUpdate, bool) {
	now := s.now()
	update := models.InvoiceUpdate{UpdatedAt: now}
	changed := false

	if req.Patient != nil {
		id, _ := primitive.ObjectIDFromHex(*req.Patient)
		update.Patient = &id
		changed = true
	}
	if req.Items != nil {
		items := toLineItems(*req.Items)
		update.Items = &items
		changed = true
	}
	if req.TotalAmount != nil {
		update.TotalAmount = req.TotalAmount
		changed = true
	}
	if req.DueDate != nil {
		due, _ := ParseDate(*req.DueDate)
		update.DueDate = &due
		changed = true
	}
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		update.Notes = &notes
		changed = true
	}
	if req.Status != nil {
		status := models.InvoiceStatus(*req.Status)
		update.Status = &status
		if status == models.InvoicePaid {
			update.PaymentDate = &now
		} else {
			update.ClearPaymentDate = true
		}
		changed = true
	}
	return update, changed
}

func buildInvoiceFilter(params InvoiceListParams) (models.InvoiceFilter, error) {
	var filter models.InvoiceFilter
	var details []util.FieldError

	if status := strings.TrimSpace(params.Status); status != "" {
		s := models.InvoiceStatus(status)
		if !s.Valid() {
			details = append(details, util.FieldError{Field: "status", Message: "must be one of: pending paid cancelled"})
		} else {
			filter.Status = &s
		}
	}
	if patient := strings.TrimSpace(params.PatientID); patient != "" {
		id, err := primitive.ObjectIDFromHex(patient)
		if err != nil {
			details = append(details, util.FieldError{Field: "patientId", Message: validationMessages["objectid"]})
		} else {
			filter.PatientID = &id
		}
	}
	if len(details) > 0 {
		return filter, util.ValidationError(util.INVALID_QUERY_PARAMS, details...)
	}

	if params.StartDate != nil || params.EndDate != nil {
		var dateRange models.DateRange
		if params.StartDate != nil {
			dateRange.Start = *params.StartDate
		}
		if params.EndDate != nil {
			dateRange.End = *params.EndDate
		}
		if !dateRange.Start.IsZero() && !dateRange.End.IsZero() && dateRange.Start.After(dateRange.End) {
			return filter, util.ValidationError(util.INVALID_DATE_RANGE)
		}
		filter.DateRange = &dateRange
	}
	return filter, nil
}

func toLineItems(reqs []LineItemRequest) []models.LineItem {
	items := make([]models.LineItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, models.LineItem{
			Description: strings.TrimSpace(r.Description),
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			Amount:      float64(r.Quantity) * r.UnitPrice,
		})
	}
	return items
}

// attachPatients sets PatientInfo on every invoice whose patient exists.
// Missing patients leave PatientInfo nil.
func (s *InvoiceService) attachPatients(ctx context.Context, invoices []models.Invoice, withAddress bool) error {
	if len(invoices) == 0 {
		return nil
	}
	seen := make(map[primitive.ObjectID]bool, len(invoices))
	ids := make([]primitive.ObjectID, 0, len(invoices))
	for _, inv := range invoices {
		if !seen[inv.Patient] {
			seen[inv.Patient] = true
			ids = append(ids, inv.Patient)
		}
	}
	summaries, err := s.patients.FindSummaries(ctx, ids, withAddress)
	if err != nil {
		return err
	}
	for i := range invoices {
		if summary, ok := summaries[invoices[i].Patient]; ok {
			invoices[i].PatientInfo = &summary
		}
	}
	return nil
}

// attachAfterWrite attaches the patient summary to a freshly written invoice.
// The write already happened, so a lookup failure is only logged.
func (s *InvoiceService) attachAfterWrite(ctx context.Context, invoice *models.Invoice) {
	invoices := []models.Invoice{*invoice}
	if err := s.attachPatients(ctx, invoices, false); err != nil {
		s.logger.Warn("patient lookup failed after write", zap.String("invoice_id", invoice.ID.Hex()), zap.Error(err))
		return
	}
	invoice.PatientInfo = invoices[0].PatientInfo
}
