package controllers

import (
	"ClinicHub/middleware"
	"ClinicHub/services"
	"ClinicHub/util"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps a service error kind onto an HTTP status.
func statusFor(err error) int {
	switch util.KindOf(err) {
	case util.KindValidation:
		return http.StatusBadRequest
	case util.KindNotFound:
		return http.StatusNotFound
	case util.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the failure envelope. Infrastructure failures are
// logged here with their full cause and never shown to the client.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		_ = c.Error(err)
	}
	c.JSON(status, util.FailedResponse(err))
}

// bindJSON decodes the body into req and turns decode failures into
// validation errors.
func bindJSON(c *gin.Context, req interface{}) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return util.ValidationError(util.INVALID_REQUEST_BODY,
			util.FieldError{Field: typeErr.Field, Message: "must be of type " + typeErr.Type.String()})
	}
	return util.ValidationError(util.INVALID_REQUEST_BODY)
}

// pageParams reads page and pageSize; unparsable values fall back to defaults
// in the service.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	return page, pageSize
}

// dateQuery parses an optional date query parameter. A plain end date is
// widened to the last instant of that day.
func dateQuery(c *gin.Context, name string, endOfDay bool) (*time.Time, *util.FieldError) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	t, err := services.ParseDate(raw)
	if err != nil {
		return nil, &util.FieldError{Field: name, Message: "must be a date in YYYY-MM-DD or RFC3339 format"}
	}
	if endOfDay && services.IsDateOnly(raw) {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func boolQuery(c *gin.Context, name string) (*bool, *util.FieldError) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &util.FieldError{Field: name, Message: "must be true or false"}
	}
	return &v, nil
}
