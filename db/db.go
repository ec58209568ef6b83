package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Franklin-pro/simpo-planet-studio-bn/config"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const mysqlDuplicateEntry = 1062

var Instance *gorm.DB

// Init opens the configured database: MySQL, then PostgreSQL, then SQLite
func Init() error {
	var dialector gorm.Dialector
	switch {
	case config.MYSQL_DSN != "":
		dialector = mysqldriver.Open(config.MYSQL_DSN)
	case config.POSTGRES_DSN != "":
		dialector = postgres.Open(config.POSTGRES_DSN)
	case config.SQLITE_FILE != "":
		dialector = sqlite.Open(config.SQLITE_FILE)
	default:
		return errors.New("no database configured")
	}
	db, err := Open(dialector)
	if err != nil {
		return err
	}
	Instance = db
	log.Info().Str("dialect", dialector.Name()).Msg("database connected")
	return nil
}

// Open returns a gorm instance with the settings used throughout the server
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 zerologLogger{level: logger.Warn},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialector.Name(), err)
	}
	return db, nil
}

// Context returns a context bound by DB_TIMEOUT
func Context(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, config.DB_TIMEOUT)
}

// IsDuplicate reports unique index violations regardless of the driver in use
func IsDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// zerologLogger bridges gorm's logger to zerolog
type zerologLogger struct {
	level logger.LogLevel
}

const slowQuery = 200 * time.Millisecond

func (l zerologLogger) LogMode(level logger.LogLevel) logger.Interface {
	l.level = level
	return l
}

func (l zerologLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		log.Info().Msgf(msg, args...)
	}
}

func (l zerologLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		log.Warn().Msgf(msg, args...)
	}
}

func (l zerologLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		log.Error().Msgf(msg, args...)
	}
}

func (l zerologLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		sql, rows := fc()
		log.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case elapsed > slowQuery && l.level >= logger.Warn:
		sql, rows := fc()
		log.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow query")
	case l.level >= logger.Info:
		sql, rows := fc()
		log.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}

// OpenInMemory returns a private in-memory SQLite database, used by tests
func OpenInMemory(name string) (*gorm.DB, error) {
	db, err := Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// One connection keeps the shared-cache database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
