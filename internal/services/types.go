package services

import (
	"errors"

	"github.com/smartclin/clinic-api/internal/apperr"
	"gorm.io/gorm"
)

// Pagination describes the window a list call returned. Total and Pages are
// only populated where the underlying query counts.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total,omitempty"`
	Pages int   `json:"pages,omitempty"`
}

// ListResult is the uniform list response shape
type ListResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// normalizePage clamps paging inputs to sane bounds
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// orNotFound converts a record-not-found storage error into the caller-facing
// NOT_FOUND; other storage errors pass through untouched
func orNotFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(message)
	}
	return err
}
