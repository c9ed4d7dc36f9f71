package util

import (
	"errors"
	"math"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Ok         bool         `json:"ok"`
	Data       interface{}  `json:"data,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
	Kind       ErrorKind    `json:"kind,omitempty"`
	Message    string       `json:"message,omitempty"`
	Details    []FieldError `json:"details,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination derives totalPages as ceil(total/pageSize).
func NewPagination(page, pageSize int, total int64) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}

func SuccessResponse(data interface{}) Response {
	return Response{Ok: true, Data: data}
}

func PaginatedResponse(data interface{}, pagination Pagination) Response {
	return Response{Ok: true, Data: data, Pagination: &pagination}
}

// FailedResponse builds the failure envelope. Only AppErrors that are not
// infrastructure failures expose their message.
func FailedResponse(err error) Response {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Kind == KindInfrastructure {
		return Response{Ok: false, Kind: KindInfrastructure, Message: INTERNAL_SERVER_ERROR}
	}
	return Response{Ok: false, Kind: appErr.Kind, Message: appErr.Message, Details: appErr.Details}
}
