package services

import (
	"context"
	"fmt"

	"advocates/internal/domain/models"
	"advocates/internal/repositories"
	"advocates/internal/seed"
	"advocates/internal/utils"
)

// SeedService bulk-loads the fixed advocate set. It is run out-of-band, never per request.
type SeedService struct {
	Repo        repositories.AdvocateRepository
	CreateTable bool
	// Data overrides the embedded seed set.
	Data []models.Advocate
}

func (s SeedService) Run(ctx context.Context) (int, error) {
	data := s.Data
	if data == nil {
		var err error
		if data, err = seed.Advocates(); err != nil {
			return 0, err
		}
	}

	if s.CreateTable {
		if err := s.Repo.CreateTable(ctx); err != nil {
			return 0, err
		}
	}

	utils.LogEvent("", "seed", "insert", fmt.Sprintf("seeding %d advocates", len(data)))
	n, err := s.Repo.InsertMany(ctx, data)
	if err != nil {
		return 0, fmt.Errorf("seed advocates: %w", err)
	}
	utils.LogEvent("", "seed", "insert", fmt.Sprintf("inserted %d advocates", n))
	return n, nil
}
