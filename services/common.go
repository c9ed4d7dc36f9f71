package services

import (
	"ClinicHub/db"
	"ClinicHub/util"
	"math"
	"time"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageResult is one page of a listing together with its pagination metadata.
type PageResult[T any] struct {
	Items      []T             `json:"items"`
	Pagination util.Pagination `json:"pagination"`
}

// NormalizePage replaces non-positive values with defaults and caps pageSize.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// skipFor returns the number of documents before page. ok is false when the
// offset does not fit in an int64; such a page is necessarily empty.
func skipFor(page, pageSize int) (skip int64, ok bool) {
	if int64(page-1) > math.MaxInt64/int64(pageSize) {
		return 0, false
	}
	return int64(page-1) * int64(pageSize), true
}

// storeError translates a store adapter failure into a service error.
func storeError(err error, notFound, conflict string) error {
	switch db.KindOf(err) {
	case db.KindNotFound:
		return util.NotFoundError(notFound)
	case db.KindDuplicateKey:
		return util.ConflictError(conflict, err)
	default:
		return util.InfrastructureError(err)
	}
}

func systemClock() time.Time {
	return time.Now().UTC()
}
