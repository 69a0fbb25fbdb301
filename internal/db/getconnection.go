//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/e-gun/CourseNLPServer/internal/str"
	"github.com/e-gun/CourseNLPServer/internal/vv"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

//
// Every call opens its own connection and closes it when done: no pool, no retry.
//

const (
	DRIVERPOSTGRES = "postgres"
	DRIVERSQLITE   = "sqlite"
)

// Store - where the live course rows come from
type Store interface {
	FetchDescriptions(ctx context.Context) ([]str.CorpusEntry, error)
	FetchCourses(ctx context.Context) ([]str.CourseRecord, error)
}

// SQLStore - a Store behind database/sql; 'Driver' is the name registered with database/sql
type SQLStore struct {
	Driver string
	DSN    string
}

// NewStore - a SQLStore for the configured driver; cfg.DSN wins over cfg.DBLogin
func NewStore(cfg str.CurrentConfiguration) (*SQLStore, error) {
	const (
		FAIL = "unknown database driver '%s': expected '%s' or '%s'"
	)

	switch cfg.DBDriver {
	case DRIVERPOSTGRES, "pgx", "":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = PostgresURI(cfg.DBLogin)
		}
		return &SQLStore{Driver: "pgx", DSN: dsn}, nil
	case DRIVERSQLITE:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = vv.DEFAULTSQLITEFILE
		}
		return &SQLStore{Driver: DRIVERSQLITE, DSN: dsn}, nil
	default:
		return nil, fmt.Errorf(FAIL, cfg.DBDriver, DRIVERPOSTGRES, DRIVERSQLITE)
	}
}

// PostgresURI - the connection string for a PostgresLogin
func PostgresURI(pl str.PostgresLogin) string {
	const (
		UTPL = "postgres://%s@%s:%d/%s"
	)
	ui := url.User(pl.User)
	if pl.Pass != "" {
		ui = url.UserPassword(pl.User, pl.Pass)
	}
	return fmt.Sprintf(UTPL, ui.String(), pl.Host, pl.Port, pl.DBName)
}

// connect - open and verify one connection for the lifetime of a single call
func (s *SQLStore) connect(ctx context.Context) (*sql.DB, error) {
	dbh, err := sql.Open(s.Driver, s.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Driver, err)
	}
	dbh.SetMaxOpenConns(1)

	if err = dbh.PingContext(ctx); err != nil {
		_ = dbh.Close()
		return nil, diagnose(s.Driver, err)
	}
	return dbh, nil
}

// diagnose - add a hint to the errors that people actually run into
func diagnose(driver string, err error) error {
	const (
		ERRRUN  = `dial error`
		FAILRUN = `the PostgreSQL server cannot be found; check that it is running and serving on the configured port: %w`
		ERRAUTH = `authentication failed`
		FAILAUT = `PostgreSQL rejected the login; check the user and password in the configuration: %w`
		FAILGEN = `could not connect via %s: %w`
	)

	switch {
	case strings.Contains(err.Error(), ERRRUN):
		return fmt.Errorf(FAILRUN, err)
	case strings.Contains(err.Error(), ERRAUTH):
		return fmt.Errorf(FAILAUT, err)
	default:
		return fmt.Errorf(FAILGEN, driver, err)
	}
}
