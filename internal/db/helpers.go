package db

import (
	"context"
	"database/sql"
	"strings"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// LikeEscape is the ESCAPE character used with ContainsPattern.
const LikeEscape = "!"

var likeReplacer = strings.NewReplacer(
	LikeEscape, LikeEscape+LikeEscape,
	"%", LikeEscape+"%",
	"_", LikeEscape+"_",
)

// ContainsPattern turns free text into a lowercased LIKE pattern matching it
// as a literal substring. Use with "LOWER(col) LIKE ? ESCAPE '!'".
func ContainsPattern(q string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(q)) + "%"
}
