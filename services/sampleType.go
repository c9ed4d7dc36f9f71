package services

import (
	"ClinicHub/models"
	"ClinicHub/util"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

type CreateSampleTypeRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Code        string `json:"code" validate:"required,max=20"`
	Category    string `json:"category" validate:"required,oneof=blood urine stool saliva tissue swab csf other"`
	Description string `json:"description" validate:"max=500"`
	IsActive    *bool  `json:"isActive"`
}

type UpdateSampleTypeRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=2,max=100"`
	Code        *string `json:"code" validate:"omitnil,min=1,max=20"`
	Category    *string `json:"category" validate:"omitnil,oneof=blood urine stool saliva tissue swab csf other"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
}

type SampleTypeListParams struct {
	Category string
	IsActive *bool
	Search   string
	Page     int
	PageSize int
}

type SampleTypeService struct {
	sampleTypes SampleTypeRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewSampleTypeService(sampleTypes SampleTypeRepository, logger *zap.Logger) *SampleTypeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SampleTypeService{sampleTypes: sampleTypes, logger: logger, now: systemClock}
}

/*
* Trim the name, trim and upper-case the code
* Validate, default isActive to true
* Insert; the unique indexes turn duplicates into a conflict
 */
func (s *SampleTypeService) Create(ctx context.Context, req CreateSampleTypeRequest) (*models.SampleType, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Code = normalizeCode(req.Code)
	req.Category = normalizeCategory(req.Category)
	req.Description = strings.TrimSpace(req.Description)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := s.now()
	sampleType := &models.SampleType{
		Name:        req.Name,
		Code:        req.Code,
		Category:    models.SampleCategory(req.Category),
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsActive != nil {
		sampleType.IsActive = *req.IsActive
	}
	if err := s.sampleTypes.Insert(ctx, sampleType); err != nil {
		return nil, storeError(err, util.SAMPLE_TYPE_NOT_FOUND, util.SAMPLE_TYPE_ALREADY_EXISTS)
	}
	s.logger.Info("sample type created", zap.String("sample_type_id", sampleType.ID.Hex()), zap.String("code", sampleType.Code))
	return sampleType, nil
}

func (s *SampleTypeService) List(ctx context.Context, params SampleTypeListParams) (*PageResult[models.SampleType], error) {
	filter, err := buildSampleTypeFilter(params)
	if err != nil {
		return nil, err
	}
	page, pageSize := NormalizePage(params.Page, params.PageSize)

	sampleTypes := []models.SampleType{}
	if skip, ok := skipFor(page, pageSize); ok {
		sampleTypes, err = s.sampleTypes.Find(ctx, filter, skip, int64(pageSize))
		if err != nil {
			return nil, util.InfrastructureError(err)
		}
	}
	total, err := s.sampleTypes.Count(ctx, filter)
	if err != nil {
		return nil, util.InfrastructureError(err)
	}
	return &PageResult[models.SampleType]{Items: sampleTypes, Pagination: util.NewPagination(page, pageSize, total)}, nil
}

func (s *SampleTypeService) GetByID(ctx context.Context, rawID string) (*models.SampleType, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	sampleType, err := s.sampleTypes.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, util.SAMPLE_TYPE_NOT_FOUND, util.SAMPLE_TYPE_ALREADY_EXISTS)
	}
	return sampleType, nil
}

/*
* Normalise the provided fields the same way create does
* Reject an empty patch
* A rename onto an existing name or code is a conflict
 */
func (s *SampleTypeService) Update(ctx context.Context, rawID string, req UpdateSampleTypeRequest) (*models.SampleType, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Code != nil {
		code := normalizeCode(*req.Code)
		req.Code = &code
	}
	if req.Category != nil {
		category := normalizeCategory(*req.Category)
		req.Category = &category
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		req.Description = &description
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Name == nil && req.Code == nil && req.Category == nil && req.Description == nil && req.IsActive == nil {
		return nil, util.ValidationError(util.NOTHING_TO_UPDATE)
	}

	update := models.SampleTypeUpdate{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		IsActive:    req.IsActive,
		UpdatedAt:   s.now(),
	}
	if req.Category != nil {
		category := models.SampleCategory(*req.Category)
		update.Category = &category
	}
	sampleType, err := s.sampleTypes.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, storeError(err, util.SAMPLE_TYPE_NOT_FOUND, util.SAMPLE_TYPE_ALREADY_EXISTS)
	}
	s.logger.Info("sample type updated", zap.String("sample_type_id", id.Hex()))
	return sampleType, nil
}

// ToggleStatus flips isActive in a single atomic store update.
func (s *SampleTypeService) ToggleStatus(ctx context.Context, rawID string) (*models.SampleType, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	sampleType, err := s.sampleTypes.Toggle(ctx, id, s.now())
	if err != nil {
		return nil, storeError(err, util.SAMPLE_TYPE_NOT_FOUND, util.SAMPLE_TYPE_ALREADY_EXISTS)
	}
	s.logger.Info("sample type toggled", zap.String("sample_type_id", id.Hex()), zap.Bool("is_active", sampleType.IsActive))
	return sampleType, nil
}

func (s *SampleTypeService) Delete(ctx context.Context, rawID string) (*models.SampleType, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	sampleType, err := s.sampleTypes.DeleteByID(ctx, id)
	if err != nil {
		return nil, storeError(err, util.SAMPLE_TYPE_NOT_FOUND, util.SAMPLE_TYPE_ALREADY_EXISTS)
	}
	s.logger.Info("sample type deleted", zap.String("sample_type_id", id.Hex()))
	return sampleType, nil
}

// Stats reports totals and per-category counts. Inactive is derived so that
// active + inactive always equals total.
func (s *SampleTypeService) Stats(ctx context.Context) (*models.SampleTypeStats, error) {
	stats, err := s.sampleTypes.Stats(ctx)
	if err != nil {
		return nil, util.InfrastructureError(err)
	}
	stats.InactiveSampleTypes = stats.TotalSampleTypes - stats.ActiveSampleTypes
	if stats.ByCategory == nil {
		stats.ByCategory = []models.CategoryCount{}
	}
	return stats, nil
}

func (s *SampleTypeService) ListCategories(ctx context.Context) ([]models.SampleCategory, error) {
	categories, err := s.sampleTypes.Categories(ctx)
	if err != nil {
		return nil, util.InfrastructureError(err)
	}
	if categories == nil {
		categories = []models.SampleCategory{}
	}
	return categories, nil
}

func buildSampleTypeFilter(params SampleTypeListParams) (models.SampleTypeFilter, error) {
	filter := models.SampleTypeFilter{
		IsActive: params.IsActive,
		Search:   strings.TrimSpace(params.Search),
	}
	if raw := normalizeCategory(params.Category); raw != "" {
		category := models.SampleCategory(raw)
		if !category.Valid() {
			return filter, util.ValidationError(util.INVALID_QUERY_PARAMS,
				util.FieldError{Field: "category", Message: "must be one of: blood urine stool saliva tissue swab csf other"})
		}
		filter.Category = &category
	}
	return filter, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
