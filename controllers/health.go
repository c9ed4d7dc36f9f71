package controllers

import (
	"ClinicHub/util"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	store  Pinger
	logger *zap.Logger
}

func NewHealthController(store Pinger, logger *zap.Logger) *HealthController {
	return &HealthController{store: store, logger: logger}
}

func Health(router gin.IRouter, ctrl *HealthController) {
	router.GET("/health", ctrl.Check)
}

func (ctrl *HealthController) Check(c *gin.Context) {
	if err := ctrl.store.Ping(c.Request.Context()); err != nil {
		ctrl.logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, util.Response{
			Ok:      false,
			Kind:    util.KindInfrastructure,
			Message: util.STORE_UNAVAILABLE,
		})
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{"status": "ok"}))
}
