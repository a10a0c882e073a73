package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewPostgresConnection opens a GORM connection to Postgres. TranslateError
// is enabled so unique and foreign-key violations surface as
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated instead of raw driver
// errors.
func NewPostgresConnection(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
}
