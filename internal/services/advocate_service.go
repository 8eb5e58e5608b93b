package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"advocates/internal/domain"
	"advocates/internal/domain/models"
	"advocates/internal/repositories"
	"advocates/internal/utils"

	"go.uber.org/zap"
)

// AdvocateStore is the read side of the advocates table.
type AdvocateStore interface {
	Count(ctx context.Context, q string) (int64, error)
	List(ctx context.Context, q string, limit, offset int) ([]models.Advocate, error)
	GetByID(ctx context.Context, id int64) (models.Advocate, error)
}

// AdvocateService answers directory queries. It holds no state between calls.
type AdvocateService struct {
	Store     AdvocateStore
	RequestID string
}

func (s AdvocateService) store() AdvocateStore {
	if s.Store != nil {
		return s.Store
	}
	return repositories.AdvocateRepository{}
}

// Search counts the matches, then loads the requested page with the same filter.
// The two reads are independent; total and data may disagree under concurrent writes.
func (s AdvocateService) Search(ctx context.Context, req domain.QueryRequest) (domain.AdvocatePage, error) {
	store := s.store()

	total, err := store.Count(ctx, req.Query)
	if err != nil {
		return domain.AdvocatePage{}, domain.InternalError{Msg: "failed to count advocates", Err: err}
	}

	data, err := store.List(ctx, req.Query, req.PageSize, req.Offset())
	if err != nil {
		return domain.AdvocatePage{}, domain.InternalError{Msg: "failed to load advocates", Err: err}
	}

	page := domain.NewAdvocatePage(req, data, total)
	utils.LogEvent(s.RequestID, "advocate", "search", "query executed",
		zap.String("query", req.Query),
		zap.Int("page", req.Page),
		zap.Int("page_size", req.PageSize),
		zap.Int64("total", total),
		zap.Int("returned", len(page.Data)),
	)
	return page, nil
}

// Get loads one advocate by id.
func (s AdvocateService) Get(ctx context.Context, id int64) (models.Advocate, error) {
	if id <= 0 {
		return models.Advocate{}, domain.ValidationError{Field: "id", Msg: "must be a positive integer"}
	}
	a, err := s.store().GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Advocate{}, domain.NotFoundError{Resource: "advocate", Err: err}
	}
	if err != nil {
		return models.Advocate{}, domain.InternalError{Msg: fmt.Sprintf("failed to load advocate %d", id), Err: err}
	}
	return a, nil
}
