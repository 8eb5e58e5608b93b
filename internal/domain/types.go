package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"advocates/internal/domain/models"
)

// Pagination defaults and limits for the query endpoint.
const (
	MinPage           = 1
	MinPageSize       = 1
	MaxPageSize       = 100
	DefaultPageSize   = 20
	DefaultUIPageSize = 10
)

// URL query parameter names.
const (
	QueryParamSearch   = "q"
	QueryParamPage     = "page"
	QueryParamPageSize = "pageSize"
)

const defaultPageParam = "1"

// QueryRequest is built per call and never persisted.
type QueryRequest struct {
	Query    string `json:"query"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// Offset is the number of matching rows skipped before this page. It
// saturates at math.MaxInt so huge page numbers still select nothing.
func (r QueryRequest) Offset() int {
	if r.Page <= MinPage || r.PageSize <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PageSize {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PageSize
}

// NewQueryRequest clamps already-parsed values.
func NewQueryRequest(q string, page, pageSize int) QueryRequest {
	if page < MinPage {
		page = MinPage
	}
	return QueryRequest{
		Query:    strings.TrimSpace(q),
		Page:     page,
		PageSize: ClampPageSize(pageSize),
	}
}

// ParseQueryRequest parses raw URL values. Malformed numbers fall back to
// defaults; nothing here returns an error.
func ParseQueryRequest(q, page, pageSize string, defaultPageSize int) QueryRequest {
	p := parseIntOr(page, defaultPageParam, MinPage)
	ps := parseIntOr(pageSize, strconv.Itoa(defaultPageSize), defaultPageSize)
	return NewQueryRequest(q, p, ps)
}

// ClampPageSize keeps a page size inside [MinPageSize, MaxPageSize].
func ClampPageSize(n int) int {
	if n < MinPageSize {
		return MinPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// TotalPages is max(ceil(total/pageSize), 1).
func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (total + int64(pageSize) - 1) / int64(pageSize)
	if pages < 1 {
		return 1
	}
	return int(pages)
}

// AdvocatePage is the JSON envelope returned by GET /api/advocates.
type AdvocatePage struct {
	Data       []models.Advocate `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"totalPages"`
	Query      string            `json:"query"`
}

// NewAdvocatePage assembles the envelope; data is never nil.
func NewAdvocatePage(req QueryRequest, data []models.Advocate, total int64) AdvocatePage {
	if data == nil {
		data = []models.Advocate{}
	}
	return AdvocatePage{
		Data:       data,
		Page:       req.Page,
		PageSize:   req.PageSize,
		Total:      total,
		TotalPages: TotalPages(total, req.PageSize),
		Query:      req.Query,
	}
}

// parseIntOr mirrors parseInt on a defaulted string: leading digits count,
// anything unparseable yields fallback. Out-of-range numbers saturate.
func parseIntOr(raw, def string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = def
	}
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	switch {
	case errors.Is(err, strconv.ErrRange) && raw[0] == '-':
		return math.MinInt
	case errors.Is(err, strconv.ErrRange):
		return math.MaxInt
	case err != nil:
		return fallback
	}
	return n
}
