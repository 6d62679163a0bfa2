package database

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Group{},
	&models.Post{},
	&models.Comment{},
	&models.Follow{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(AutoMaintainRange...); err != nil {
		return err
	}

	return nil
}
