package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	intdb "advocates/internal/db"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ErrNoDatabaseURL is returned when no connection string was configured.
var ErrNoDatabaseURL = errors.New("DATABASE_URL is not set")

var (
	dbMu      sync.Mutex
	shared    *sql.DB
	dialect   intdb.Dialect
	configURL string
)

// SetDatabaseURL records the connection string used by the first ConnectDB call.
func SetDatabaseURL(url string) {
	dbMu.Lock()
	defer dbMu.Unlock()
	configURL = url
}

// ConnectDB returns the process-wide handle, opening it on first use.
func ConnectDB(ctx context.Context) (*sql.DB, intdb.Dialect, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if shared != nil {
		return shared, dialect, nil
	}
	if configURL == "" {
		return nil, intdb.Dialect{}, ErrNoDatabaseURL
	}

	d, dsn, err := intdb.ParseURL(configURL)
	if err != nil {
		return nil, intdb.Dialect{}, err
	}
	conn, err := sql.Open(d.DriverName, dsn)
	if err != nil {
		return nil, intdb.Dialect{}, fmt.Errorf("open %s: %w", d.Name, err)
	}
	if d.Name == intdb.SQLite.Name {
		// one connection keeps :memory: databases coherent
		conn.SetMaxOpenConns(1)
	}
	conn.SetConnMaxLifetime(10 * time.Minute)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, intdb.Dialect{}, fmt.Errorf("ping %s: %w", d.Name, err)
	}

	shared, dialect = conn, d
	return shared, dialect, nil
}

// UseDB installs an already-open handle, replacing any previous one.
func UseDB(conn *sql.DB, d intdb.Dialect) {
	dbMu.Lock()
	defer dbMu.Unlock()
	shared, dialect = conn, d
}

// EnsureDB connects if needed and pings the shared handle.
func EnsureDB(ctx context.Context) error {
	conn, _, err := ConnectDB(ctx)
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return conn.PingContext(pingCtx)
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if shared != nil {
		_ = shared.Close()
		shared = nil
	}
}
