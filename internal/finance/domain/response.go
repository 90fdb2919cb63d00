package domain

import (
	"math"
	"net/http"
)

const (
	DefaultStatusCode = http.StatusOK
	DefaultPageNumber = 1
	DefaultPageSize   = 25
	MaxPageSize       = 100
	MaxOffset         = math.MaxInt32
)

// Response is the envelope returned by every single-record operation.
type Response[T any] struct {
	Data    *T     `json:"data"`
	Code    int    `json:"status_code"`
	Message string `json:"message,omitempty"`
}

func NewResponse[T any](data *T, code int, message string) *Response[T] {
	return &Response[T]{Data: data, Code: code, Message: message}
}

func (r *Response[T]) IsSuccess() bool {
	return r.Code >= 200 && r.Code <= 299
}

type PagedResponse[T any] struct {
	Data        []T    `json:"data"`
	TotalCount  int    `json:"total_count"`
	CurrentPage int    `json:"current_page"`
	PageSize    int    `json:"page_size"`
	TotalPages  int    `json:"total_pages"`
	Code        int    `json:"status_code"`
	Message     string `json:"message,omitempty"`
}

func NewPagedResponse[T any](data []T, totalCount, currentPage, pageSize int) *PagedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return &PagedResponse[T]{
		Data:        data,
		TotalCount:  totalCount,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages(totalCount, pageSize),
		Code:        DefaultStatusCode,
	}
}

// NewPagedErrorResponse carries no data and no pagination metadata.
func NewPagedErrorResponse[T any](code int, message string) *PagedResponse[T] {
	return &PagedResponse[T]{Code: code, Message: message}
}

func (r *PagedResponse[T]) IsSuccess() bool {
	return r.Code >= 200 && r.Code <= 299
}

func totalPages(totalCount, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

// Pagination normalizes a 1-based page number and a page size into an offset/limit pair.
// The size is capped at MaxPageSize and the page number clamped so the offset never
// exceeds MaxOffset.
func Pagination(pageNumber, pageSize int) (page, size, offset int) {
	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if maxPage := MaxPageNumber(pageSize); pageNumber > maxPage {
		pageNumber = maxPage
	}
	return pageNumber, pageSize, (pageNumber - 1) * pageSize
}

// MaxPageNumber is the last page whose offset stays within MaxOffset.
func MaxPageNumber(pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return MaxOffset/pageSize + 1
}
