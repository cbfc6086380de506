package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"

	"insecticide/internal/domain"
)

// DefaultTable is the report table name
const DefaultTable = "REPORT"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// Dialect describes the SQL flavour of a result log backend
type Dialect struct {
	Name       string
	DriverName string
	// FloatType is the column type used for timestamps and durations.
	FloatType   string
	Placeholder func(n int) string
	ParseDSN    func(dsn string) error
}

var (
	MySQL = Dialect{
		Name:        "mysql",
		DriverName:  "mysql",
		FloatType:   "DOUBLE",
		Placeholder: func(int) string { return "?" },
		ParseDSN: func(dsn string) error {
			_, err := mysql.ParseDSN(dsn)
			return err
		},
	}
	Postgres = Dialect{
		Name:        "postgres",
		DriverName:  "pgx",
		FloatType:   "DOUBLE PRECISION",
		Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		ParseDSN: func(dsn string) error {
			_, err := pgx.ParseConfig(dsn)
			return err
		},
	}
)

// DialectByName resolves a result_log value to a Dialect
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case MySQL.Name:
		return MySQL, nil
	case Postgres.Name, "postgresql", "pgx":
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported sql dialect %q", name)
	}
}

// SQLResultLog stores records in a relational REPORT table
type SQLResultLog struct {
	db      *sql.DB
	dialect Dialect
	table   string
}

// OpenSQLResultLog connects to dsn, checks the connection and creates the table if missing
func OpenSQLResultLog(ctx context.Context, dialect Dialect, dsn, table string) (*SQLResultLog, error) {
	if dsn == "" {
		return nil, persistenceErr("open", errors.New("empty result log dsn"))
	}
	if err := dialect.ParseDSN(dsn); err != nil {
		return nil, persistenceErr("open", errors.Wrapf(err, "invalid %s dsn", dialect.Name))
	}
	db, err := sql.Open(dialect.DriverName, dsn)
	if err != nil {
		return nil, persistenceErr("open", errors.Wrap(err, "failed to connect to database server"))
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, persistenceErr("open", errors.Wrap(err, "failed to ping database server"))
	}

	log, err := NewSQLResultLog(db, dialect, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := log.EnsureTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return log, nil
}

// NewSQLResultLog wraps an open database. An empty table name uses DefaultTable.
func NewSQLResultLog(db *sql.DB, dialect Dialect, table string) (*SQLResultLog, error) {
	if table == "" {
		table = DefaultTable
	}
	if !isValidTableName(table) {
		return nil, persistenceErr("open", errors.Errorf("invalid table name %q", table))
	}
	return &SQLResultLog{db: db, dialect: dialect, table: table}, nil
}

// EnsureTable creates the report table if it does not exist
func (s *SQLResultLog) EnsureTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.createTableQuery()); err != nil {
		return persistenceErr("create table", errors.Wrapf(err, "create table %s", s.table))
	}
	return nil
}

// Append inserts all records in one transaction
func (s *SQLResultLog) Append(ctx context.Context, records []domain.Record) (err error) {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistenceErr("append", errors.Wrap(err, "begin transaction"))
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, s.insertQuery())
	if err != nil {
		return persistenceErr("append", errors.Wrap(err, "prepare insert"))
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err = stmt.ExecContext(ctx, r.Name, r.StartTimestamp, r.DurationS, r.StatusCode, r.Message); err != nil {
			return persistenceErr("append", errors.Wrapf(err, "insert record %q", r.Name))
		}
	}

	if err = tx.Commit(); err != nil {
		return persistenceErr("append", errors.Wrap(err, "commit transaction"))
	}
	return nil
}

// Close closes the database handle
func (s *SQLResultLog) Close() error {
	return persistenceErr("close", s.db.Close())
}

func (s *SQLResultLog) createTableQuery() string {
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (NAME TEXT NOT NULL, START_TIMESTAMP %s, DURATION_S %s, STATUS_CODE INT, MESSAGE TEXT)",
		s.table, s.dialect.FloatType, s.dialect.FloatType,
	)
}

func (s *SQLResultLog) insertQuery() string {
	placeholders := make([]string, 5)
	for i := range placeholders {
		placeholders[i] = s.dialect.Placeholder(i + 1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (NAME, START_TIMESTAMP, DURATION_S, STATUS_CODE, MESSAGE) VALUES (%s)",
		s.table, strings.Join(placeholders, ", "),
	)
}

// isValidTableName keeps identifiers safe to interpolate into queries
func isValidTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}
