package controllers

import (
	"ClinicHub/models"
	"ClinicHub/services"
	"ClinicHub/util"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SampleTypeService interface {
	Create(ctx context.Context, req services.CreateSampleTypeRequest) (*models.SampleType, error)
	List(ctx context.Context, params services.SampleTypeListParams) (*services.PageResult[models.SampleType], error)
	GetByID(ctx context.Context, id string) (*models.SampleType, error)
	Update(ctx context.Context, id string, req services.UpdateSampleTypeRequest) (*models.SampleType, error)
	ToggleStatus(ctx context.Context, id string) (*models.SampleType, error)
	Delete(ctx context.Context, id string) (*models.SampleType, error)
	Stats(ctx context.Context) (*models.SampleTypeStats, error)
	ListCategories(ctx context.Context) ([]models.SampleCategory, error)
}

type SampleTypeController struct {
	sampleTypes SampleTypeService
	logger      *zap.Logger
}

func NewSampleTypeController(sampleTypes SampleTypeService, logger *zap.Logger) *SampleTypeController {
	return &SampleTypeController{sampleTypes: sampleTypes, logger: logger}
}

func SampleType(router gin.IRouter, ctrl *SampleTypeController) {
	sampleType := router.Group("/sample-types")
	{
		sampleType.POST("", ctrl.Create)
		sampleType.GET("", ctrl.List)
		sampleType.GET("/stats", ctrl.Stats)
		sampleType.GET("/categories", ctrl.Categories)
		sampleType.GET("/:id", ctrl.GetByID)
		sampleType.PUT("/:id", ctrl.Update)
		sampleType.PATCH("/:id/toggle", ctrl.Toggle)
		sampleType.DELETE("/:id", ctrl.Delete)
	}
}

func (ctrl *SampleTypeController) Create(c *gin.Context) {
	var req services.CreateSampleTypeRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	sampleType, err := ctrl.sampleTypes.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(sampleType))
}

func (ctrl *SampleTypeController) List(c *gin.Context) {
	params := services.SampleTypeListParams{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	params.Page, params.PageSize = pageParams(c)

	isActive, fieldErr := boolQuery(c, "isActive")
	if fieldErr != nil {
		respondError(c, ctrl.logger, util.ValidationError(util.INVALID_QUERY_PARAMS, *fieldErr))
		return
	}
	params.IsActive = isActive

	result, err := ctrl.sampleTypes.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, util.PaginatedResponse(result.Items, result.Pagination))
}

func (ctrl *SampleTypeController) Stats(c *gin.Context) {
	stats, err := ctrl.sampleTypes.Stats(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(stats))
}

func (ctrl *SampleTypeController) Categories(c *gin.Context) {
	categories, err := ctrl.sampleTypes.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(categories))
}

func (ctrl *SampleTypeController) GetByID(c *gin.Context) {
	sampleType, err := ctrl.sampleTypes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(sampleType))
}

func (ctrl *SampleTypeController) Update(c *gin.Context) {
	var req services.UpdateSampleTypeRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	sampleType, err := ctrl.sampleTypes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(sampleType))
}

func (ctrl *SampleTypeController) Toggle(c *gin.Context) {
	sampleType, err := ctrl.sampleTypes.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(sampleType))
}

func (ctrl *SampleTypeController) Delete(c *gin.Context) {
	sampleType, err := ctrl.sampleTypes.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	resp := util.SuccessResponse(sampleType)
	resp.Message = util.SAMPLE_TYPE_DELETED
	c.JSON(http.StatusOK, resp)
}
