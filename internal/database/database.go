package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/datamodel/admin"
	"github.com/frahmantamala/hr-management/internal/core/datamodel/attendance"
	"github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/hr-management/internal/core/datamodel/team"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB bundles the gorm handle used by repositories and the sqlx handle used
// for health checks and raw reporting queries. Both share one pool.
type DB struct {
	Gorm   *gorm.DB
	SQL    *sqlx.DB
	Driver string
}

func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}

func (d *DB) Ping(ctx context.Context) error {
	return d.SQL.PingContext(ctx)
}

// Open connects according to cfg.Driver. An empty driver means postgres.
func Open(cfg internal.DatabaseConfig, log *slog.Logger) (*DB, error) {
	switch cfg.Driver {
	case "", DriverPostgres:
		return OpenPostgres(cfg, log)
	case DriverSQLite:
		return OpenSQLite(cfg.Source)
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", cfg.Driver)
	}
}

func OpenPostgres(cfg internal.DatabaseConfig, log *slog.Logger) (*DB, error) {
	const driver = "pgx"

	sqlxDB, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlxDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlxDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlxDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlxDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlxDB.DB}), gormConfig(log))
	if err != nil {
		_ = sqlxDB.Close()
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}

	return &DB{Gorm: gormDB, SQL: sqlxDB, Driver: DriverPostgres}, nil
}

// OpenSQLite opens a single-connection SQLite database and creates the
// schema with AutoMigrate. Used for tests and local runs without postgres.
func OpenSQLite(dsn string) (*DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	gormDB, err := gorm.Open(sqlite.Open(dsn), gormConfig(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	// :memory: databases are per connection
	sqlDB.SetMaxOpenConns(1)

	if err := gormDB.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := AutoMigrate(gormDB); err != nil {
		return nil, err
	}

	return &DB{Gorm: gormDB, SQL: sqlx.NewDb(sqlDB, "sqlite3"), Driver: DriverSQLite}, nil
}

// AutoMigrate creates the tables for every model. Production schemas come
// from the goose migrations in db/migrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&admin.Admin{},
		&team.Team{},
		&employee.Employee{},
		&attendance.AttendanceLog{},
		&leave.DailyLeaveRecord{},
		&leave.HourlyLeaveRecord{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func gormConfig(log *slog.Logger) *gorm.Config {
	level := gormlogger.Silent
	if log != nil && log.Enabled(context.Background(), slog.LevelDebug) {
		level = gormlogger.Info
	}

	return &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         gormlogger.Default.LogMode(level),
	}
}
