package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	driver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ApenasAngelo/AirbnDB-backend/internal/config"
	"github.com/ApenasAngelo/AirbnDB-backend/internal/models"
)

// DB wraps the GORM handle. It is constructed once at startup and passed
// explicitly to every component that touches the database; there is no
// package-level connection state.
type DB struct {
	db *gorm.DB
}

// New opens a MySQL connection pool for the given settings. The pool is
// bounded at cfg.PoolSize open connections and every connection carries a
// server-side max_execution_time cap, so a runaway query cannot hold a
// handler past the configured timeout.
func New(cfg config.DatabaseConfig) (*DB, error) {
	dsn := driver.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	dsn.DBName = cfg.Database
	dsn.ParseTime = true
	dsn.Loc = time.Local
	dsn.Timeout = 5 * time.Second
	dsn.Params = map[string]string{
		"charset":            "utf8mb4",
		"max_execution_time": strconv.FormatInt(cfg.QueryTimeout().Milliseconds(), 10),
	}

	db, err := gorm.Open(mysql.Open(dsn.FormatDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.PoolSize)
	sqlDB.SetMaxIdleConns(cfg.PoolSize)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &DB{db: db}, nil
}

// Gorm returns the underlying gorm.DB instance
func (d *DB) Gorm() *gorm.DB {
	return d.db
}

// SQL returns the underlying database/sql pool
func (d *DB) SQL() (*sql.DB, error) {
	return d.db.DB()
}

// Ping verifies the database is reachable
func (d *DB) Ping() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates the six tables using GORM AutoMigrate. Called by the
// loader before an import; the serving API assumes the schema exists.
func (d *DB) InitSchema() error {
	return d.db.AutoMigrate(
		&models.Host{},
		&models.Property{},
		&models.Amenity{},
		&models.CalendarEntry{},
		&models.User{},
		&models.Review{},
	)
}
