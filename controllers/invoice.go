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

type InvoiceService interface {
	Create(ctx context.Context, req services.CreateInvoiceRequest) (*models.Invoice, error)
	List(ctx context.Context, params services.InvoiceListParams) (*services.PageResult[models.Invoice], error)
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	Update(ctx context.Context, id string, req services.UpdateInvoiceRequest) (*models.Invoice, error)
	MarkPaid(ctx context.Context, id string) (*models.Invoice, error)
	ListOverdue(ctx context.Context) ([]models.Invoice, error)
	Delete(ctx context.Context, id string) (*models.Invoice, error)
}

type InvoiceReporter interface {
	GetStats(ctx context.Context) (*models.InvoiceStats, error)
}

type InvoiceController struct {
	invoices InvoiceService
	reports  InvoiceReporter
	logger   *zap.Logger
}

func NewInvoiceController(invoices InvoiceService, reports InvoiceReporter, logger *zap.Logger) *InvoiceController {
	return &InvoiceController{invoices: invoices, reports: reports, logger: logger}
}

func Invoice(router gin.IRouter, ctrl *InvoiceController) {
	invoice := router.Group("/invoices")
	{
		invoice.POST("", ctrl.Create)
		invoice.GET("", ctrl.List)
		invoice.GET("/stats", ctrl.Stats)
		invoice.GET("/overdue", ctrl.Overdue)
		invoice.GET("/:id", ctrl.GetByID)
		invoice.PUT("/:id", ctrl.Update)
		invoice.PATCH("/:id/pay", ctrl.MarkPaid)
		invoice.DELETE("/:id", ctrl.Delete)
	}
}

/*
* Bind JSON
* And pass to the service
 */
func (ctrl *InvoiceController) Create(c *gin.Context) {
	var req services.CreateInvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	invoice, err := ctrl.invoices.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(invoice))
}

/*
* Collect the filters and paging from the query string
* Bad dates are rejected here, everything else by the service
 */
func (ctrl *InvoiceController) List(c *gin.Context) {
	params := services.InvoiceListParams{
		Status:    c.Query("status"),
		PatientID: c.Query("patientId"),
	}
	params.Page, params.PageSize = pageParams(c)

	var details []util.FieldError
	start, fieldErr := dateQuery(c, "startDate", false)
	if fieldErr != nil {
		details = append(details, *fieldErr)
	}
	end, fieldErr := dateQuery(c, "endDate", true)
	if fieldErr != nil {
		details = append(details, *fieldErr)
	}
	if len(details) > 0 {
		respondError(c, ctrl.logger, util.ValidationError(util.INVALID_QUERY_PARAMS, details...))
		return
	}
	params.StartDate, params.EndDate = start, end

	result, err := ctrl.invoices.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, util.PaginatedResponse(result.Items, result.Pagination))
}

func (ctrl *InvoiceController) Stats(c *gin.Context) {
	stats, err := ctrl.reports.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(stats))
}

func (ctrl *InvoiceController) Overdue(c *gin.Context) {
	invoices, err := ctrl.invoices.ListOverdue(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(invoices))
}

func (ctrl *InvoiceController) GetByID(c *gin.Context) {
	invoice, err := ctrl.invoices.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(invoice))
}

/*
* Get id from params
* Bind the fields which need to be updated
* Pass to the service
 */
func (ctrl *InvoiceController) Update(c *gin.Context) {
	var req services.UpdateInvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	invoice, err := ctrl.invoices.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(invoice))
}

func (ctrl *InvoiceController) MarkPaid(c *gin.Context) {
	invoice, err := ctrl.invoices.MarkPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(invoice))
}

func (ctrl *InvoiceController) Delete(c *gin.Context) {
	invoice, err := ctrl.invoices.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	resp := util.SuccessResponse(invoice)
	resp.Message = util.INVOICE_DELETED
	c.JSON(http.StatusOK, resp)
}
