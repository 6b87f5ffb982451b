package db

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"roomshift/internal/config"
	"roomshift/internal/model"
)

// Tables lists every model the SQL backends migrate, in creation order.
var Tables = []interface{}{
	&model.User{},
	&model.Booking{},
	&model.PaymentTransaction{},
	&model.PaymentLog{},
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	return open(mysql.Open(dsn), "mysql")
}

// NewPostgres returns a connected GORM DB instance backed by Postgres.
func NewPostgres(dsn string) (*gorm.DB, error) {
	return open(postgres.Open(dsn), "postgres")
}

// NewSQL opens the SQL backend selected by cfg.DBDriver.
func NewSQL(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return NewMySQL(cfg.DatabaseDSN)
	case config.DriverPostgres:
		return NewPostgres(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.DBDriver)
	}
}

func open(dialector gorm.Dialector, name string) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", name, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate creates or updates the tables. When reset is set every table is
// dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		for i := len(Tables) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(Tables[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	if err := db.AutoMigrate(Tables...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// CloseSQL releases the connection pool behind db.
func CloseSQL(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
