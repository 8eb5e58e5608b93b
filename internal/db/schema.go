package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// HasTable reports whether table exists in the connected schema.
func HasTable(ctx context.Context, q Querier, d Dialect, table string) (bool, error) {
	var name sql.NullString
	err := q.QueryRowContext(ctx, d.Rebind(d.TableExists), table).Scan(&name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return name.Valid && name.String != "", nil
}
