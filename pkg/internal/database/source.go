package database

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var C *gorm.DB

func NewGorm() error {
	var err error
	C, err = Open(
		viper.GetString("database.driver"),
		viper.GetString("database.dsn"),
		viper.GetString("database.prefix"),
	)
	return err
}

// Open connects to postgres or sqlite. Foreign keys are switched on for
// sqlite because the cascade rules of the schema rely on them.
func Open(driver, dsn, prefix string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		if !strings.Contains(dsn, "foreign_keys") {
			dsn += lo.Ternary(strings.Contains(dsn, "?"), "&", "?") + "_pragma=foreign_keys(1)"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	return gorm.Open(dialector, &gorm.Config{NamingStrategy: schema.NamingStrategy{
		TablePrefix: prefix,
	}, Logger: logger.New(&log.Logger, logger.Config{
		Colorful:                  true,
		IgnoreRecordNotFoundError: true,
		LogLevel:                  lo.Ternary(viper.GetBool("debug.database"), logger.Info, logger.Silent),
	})})
}
