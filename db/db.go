package db

import (
	"strings"

	"famnotes/config"
	"famnotes/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the database named by the configuration and migrates the
// schema. sqlite is the default driver; postgres is selected with
// DB_DRIVER=postgres and a DB_URL connection string.
func Connect(cfg config.Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBURL)
	default:
		// sqlite ships with foreign keys off; cascading deletes need them
		// on every pooled connection, hence the DSN parameter.
		dsn := cfg.DBURL
		if !strings.Contains(dsn, "_foreign_keys") {
			if strings.Contains(dsn, "?") {
				dsn += "&_foreign_keys=on"
			} else {
				dsn += "?_foreign_keys=on"
			}
		}
		dialector = sqlite.Open(dsn)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	if err := DB.AutoMigrate(&models.User{}, &models.Folder{}, &models.Note{}); err != nil {
		return err
	}

	log.Info().Str("driver", cfg.DBDriver).Msg("database connected")
	return nil
}
