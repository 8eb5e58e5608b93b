package services

import (
	"context"
	"fmt"

	intconfig "advocates/internal/config"
	intdb "advocates/internal/db"
	"advocates/internal/domain"
	"advocates/internal/repositories"
	"advocates/internal/utils"
)

// HealthService checks that the shared database can serve advocate queries.
type HealthService struct {
	RequestID string
}

// CheckDB pings the shared handle, confirms the advocates table exists and
// returns its row count.
func (s HealthService) CheckDB(ctx context.Context) (int64, error) {
	if err := intconfig.EnsureDB(ctx); err != nil {
		return 0, unavailable(err)
	}
	conn, d, err := intconfig.ConnectDB(ctx)
	if err != nil {
		return 0, unavailable(err)
	}
	ok, err := intdb.HasTable(ctx, conn, d, "advocates")
	if err != nil {
		return 0, unavailable(err)
	}
	if !ok {
		return 0, domain.DomainError{
			Code: domain.CodeSchemaMissing,
			Msg:  "advocates table is missing; run `advocates seed --create-table`",
		}
	}

	total, err := repositories.AdvocateRepository{DB: conn, Dialect: d}.Count(ctx, "")
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to count advocates", Err: err}
	}
	utils.LogEvent(s.RequestID, "health", "db_check", fmt.Sprintf("%s ok, %d advocates", d.Name, total))
	return total, nil
}

func unavailable(err error) error {
	return domain.DomainError{Code: domain.CodeDatabaseUnavailable, Msg: "database is not reachable", Err: err}
}
