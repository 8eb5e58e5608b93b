package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "advocates/internal/config"
	intdb "advocates/internal/db"
	"advocates/internal/domain/models"
)

const advocateColumns = `id,
	COALESCE(first_name, ''),
	COALESCE(last_name, ''),
	COALESCE(city, ''),
	COALESCE(degree, ''),
	specialties,
	COALESCE(years_of_experience, 0),
	COALESCE(phone_number, 0)`

// AdvocateRepository reads and bulk-loads the advocates table.
// A zero DB falls back to the shared process handle.
type AdvocateRepository struct {
	DB      intdb.Querier
	Dialect intdb.Dialect
}

func (r AdvocateRepository) conn(ctx context.Context) (intdb.Querier, intdb.Dialect, error) {
	if r.DB != nil {
		d := r.Dialect
		if d.Name == "" {
			d = intdb.MySQL
		}
		return r.DB, d, nil
	}
	db, d, err := intconfig.ConnectDB(ctx)
	if err != nil {
		return nil, intdb.Dialect{}, err
	}
	return db, d, nil
}

// searchFilter matches q case-insensitively as a substring of first name,
// last name, city, degree, or the JSON text of specialties.
func searchFilter(d intdb.Dialect, q string) (string, []any) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", nil
	}
	pattern := intdb.ContainsPattern(q)
	cols := []string{"first_name", "last_name", "city", "degree", d.SpecialtiesText}
	parts := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, "LOWER("+col+") LIKE ? ESCAPE '"+intdb.LikeEscape+"'")
		args = append(args, pattern)
	}
	return " WHERE (" + strings.Join(parts, " OR ") + ")", args
}

// Count returns how many advocates match q.
func (r AdvocateRepository) Count(ctx context.Context, q string) (int64, error) {
	db, d, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	where, args := searchFilter(d, q)

	var total int64
	if err := db.QueryRowContext(ctx, d.Rebind(`SELECT COUNT(*) FROM advocates`+where), args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count advocates: %w", err)
	}
	return total, nil
}

// List returns one page of advocates matching q, ordered by id.
func (r AdvocateRepository) List(ctx context.Context, q string, limit, offset int) ([]models.Advocate, error) {
	db, d, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	where, args := searchFilter(d, q)
	args = append(args, limit, offset)

	query := `SELECT ` + advocateColumns + ` FROM advocates` + where + ` ORDER BY id LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list advocates: %w", err)
	}
	defer rows.Close()

	out := make([]models.Advocate, 0, limit)
	for rows.Next() {
		a, err := scanAdvocate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan advocate: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate advocates: %w", err)
	}
	return out, nil
}

// GetByID returns sql.ErrNoRows when the id does not exist.
func (r AdvocateRepository) GetByID(ctx context.Context, id int64) (models.Advocate, error) {
	db, d, err := r.conn(ctx)
	if err != nil {
		return models.Advocate{}, err
	}
	row := db.QueryRowContext(ctx, d.Rebind(`SELECT `+advocateColumns+` FROM advocates WHERE id = ? LIMIT 1`), id)
	a, err := scanAdvocate(row)
	if err != nil {
		return models.Advocate{}, err
	}
	return a, nil
}

// InsertMany inserts every advocate in one transaction and returns the inserted count.
// Ids are assigned by the database.
func (r AdvocateRepository) InsertMany(ctx context.Context, advocates []models.Advocate) (int, error) {
	q, d, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	db, ok := q.(*sql.DB)
	if !ok {
		return r.insertAll(ctx, q, d, advocates)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed tx: %w", err)
	}
	n, err := r.insertAll(ctx, tx, d, advocates)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed tx: %w", err)
	}
	return n, nil
}

func (r AdvocateRepository) insertAll(ctx context.Context, q intdb.Querier, d intdb.Dialect, advocates []models.Advocate) (int, error) {
	query := d.Rebind(`INSERT INTO advocates
		(first_name, last_name, city, degree, specialties, years_of_experience, phone_number)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	for i, a := range advocates {
		if _, err := q.ExecContext(ctx, query,
			a.FirstName, a.LastName, a.City, a.Degree, a.Specialties, a.YearsOfExperience, a.PhoneNumber,
		); err != nil {
			return i, fmt.Errorf("insert advocate %q: %w", a.FullName(), err)
		}
	}
	return len(advocates), nil
}

// CreateTable creates the advocates table when it does not exist yet.
func (r AdvocateRepository) CreateTable(ctx context.Context) error {
	q, d, err := r.conn(ctx)
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, d.CreateTable); err != nil {
		return fmt.Errorf("create advocates table: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdvocate(row rowScanner) (models.Advocate, error) {
	var a models.Advocate
	err := row.Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.City,
		&a.Degree,
		&a.Specialties,
		&a.YearsOfExperience,
		&a.PhoneNumber,
	)
	return a, err
}
