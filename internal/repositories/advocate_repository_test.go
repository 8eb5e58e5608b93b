package repositories

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	intdb "advocates/internal/db"
	"advocates/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var advocateCols = []string{"id", "first_name", "last_name", "city", "degree", "specialties", "years_of_experience", "phone_number"}

func TestSearchFilterEmptyQuery(t *testing.T) {
	where, args := searchFilter(intdb.MySQL, "   ")
	assert.Empty(t, where)
	assert.Nil(t, args)
}

func TestSearchFilterPerDialect(t *testing.T) {
	where, args := searchFilter(intdb.MySQL, "Onco")
	assert.Contains(t, where, "LOWER(CAST(specialties AS CHAR)) LIKE ? ESCAPE '!'")
	assert.Contains(t, where, "LOWER(first_name) LIKE ?")
	require.Len(t, args, 5)
	for _, a := range args {
		assert.Equal(t, "%onco%", a)
	}

	where, _ = searchFilter(intdb.Postgres, "x")
	assert.Contains(t, where, "LOWER(specialties::text)")
	assert.Contains(t, intdb.Postgres.Rebind(where), "$5")
}

func TestCountUsesFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM advocates WHERE (LOWER(first_name) LIKE ?")).
		WithArgs("%onco%", "%onco%", "%onco%", "%onco%", "%onco%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	repo := AdvocateRepository{DB: db, Dialect: intdb.MySQL}
	total, err := repo.Count(context.Background(), "onco")
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountWithoutFilter(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT(*) FROM advocates").
		WithoutArgs().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))

	total, err := AdvocateRepository{DB: db}.Count(context.Background(), "")
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
}

func TestListPagesAndScans(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM advocates ORDER BY id LIMIT \? OFFSET \?`).
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows(advocateCols).
			AddRow(21, "Alice", "Smith", "Austin", "MD", []byte(`["Oncology"]`), 12, int64(5551234567)).
			AddRow(22, "Bob", "Jones", "Boston", "PhD", nil, 3, int64(5559876543)))

	list, err := AdvocateRepository{DB: db, Dialect: intdb.MySQL}.List(context.Background(), "", 10, 20)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.Specialties{"Oncology"}, list[0].Specialties)
	assert.Equal(t, int64(5551234567), list[0].PhoneNumber)
	assert.NotNil(t, list[1].Specialties)
	assert.Empty(t, list[1].Specialties)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPropagatesStorageErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT").WillReturnError(boom)

	_, err = AdvocateRepository{DB: db}.List(context.Background(), "x", 10, 0)
	require.ErrorIs(t, err, boom)
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE id = \$1 LIMIT 1`).WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(advocateCols))

	_, err = AdvocateRepository{DB: db, Dialect: intdb.Postgres}.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestInsertManyUsesTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO advocates").
		WithArgs("Alice", "Smith", "Austin", "MD", `["Oncology"]`, 12, int64(5551234567)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO advocates").
		WillReturnError(errors.New("duplicate"))
	mock.ExpectRollback()

	n, err := AdvocateRepository{DB: db}.InsertMany(context.Background(), []models.Advocate{
		{FirstName: "Alice", LastName: "Smith", City: "Austin", Degree: "MD", Specialties: models.Specialties{"Oncology"}, YearsOfExperience: 12, PhoneNumber: 5551234567},
		{FirstName: "Bob"},
	})
	require.Error(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

// openSQLite returns an in-memory database seeded with rows.
func openSQLite(t *testing.T, rows []models.Advocate) AdvocateRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo := AdvocateRepository{DB: db, Dialect: intdb.SQLite}
	require.NoError(t, repo.CreateTable(context.Background()))
	n, err := repo.InsertMany(context.Background(), rows)
	require.NoError(t, err)
	require.Equal(t, len(rows), n)
	return repo
}

func TestSQLiteSearchEndToEnd(t *testing.T) {
	repo := openSQLite(t, []models.Advocate{
		{FirstName: "Alice", LastName: "Smith", City: "Austin", Degree: "MD", Specialties: models.Specialties{"Oncology"}, YearsOfExperience: 10, PhoneNumber: 5550000001},
		{FirstName: "Bob", LastName: "Jones", City: "Boston", Degree: "PhD", Specialties: models.Specialties{"Cardiology"}, YearsOfExperience: 4, PhoneNumber: 5550000002},
		{FirstName: "Carla", LastName: "100%", City: "Chicago", Degree: "MSW", Specialties: models.Specialties{}, YearsOfExperience: 7, PhoneNumber: 5550000003},
	})
	ctx := context.Background()

	total, err := repo.Count(ctx, "ONCO")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	list, err := repo.List(ctx, "onco", 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0].FirstName)

	total, err = repo.Count(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	// % is literal, not a wildcard
	total, err = repo.Count(ctx, "0%")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	total, err = repo.Count(ctx, "nothing-matches-this")
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	page2, err := repo.List(ctx, "", 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "Carla", page2[0].FirstName)

	beyond, err := repo.List(ctx, "", 2, 40)
	require.NoError(t, err)
	assert.Empty(t, beyond)

	got, err := repo.GetByID(ctx, page2[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Chicago", got.City)
	assert.NotNil(t, got.Specialties)
}
