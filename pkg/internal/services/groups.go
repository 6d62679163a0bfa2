package services

import (
	"fmt"
	"regexp"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/gorm/clause"
)

type GroupConfig struct {
	Title       string `json:"title" mapstructure:"title"`
	Slug        string `json:"slug" mapstructure:"slug"`
	Description string `json:"description" mapstructure:"description"`
}

var groupSlugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

func ListGroup() ([]models.Group, error) {
	var groups []models.Group
	err := database.C.Order("title ASC").Find(&groups).Error

	return groups, err
}

func GetGroup(slug string) (models.Group, error) {
	var group models.Group
	if err := database.C.Where("slug = ?", slug).First(&group).Error; err != nil {
		return group, err
	}
	return group, nil
}

func GetGroupWithID(id uint) (models.Group, error) {
	var group models.Group
	if err := database.C.Where("id = ?", id).First(&group).Error; err != nil {
		return group, err
	}
	return group, nil
}

func NewGroup(title, slug, description string) (models.Group, error) {
	group := models.Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	if !groupSlugPattern.MatchString(slug) {
		return group, fmt.Errorf("invalid group slug %q", slug)
	}

	err := database.C.Create(&group).Error

	return group, err
}

func DeleteGroup(group models.Group) error {
	return database.C.Delete(&group).Error
}

// EnsureGroups upserts the configured groups by slug.
func EnsureGroups(configs []GroupConfig) error {
	for _, cfg := range configs {
		if !groupSlugPattern.MatchString(cfg.Slug) {
			return fmt.Errorf("invalid group slug %q", cfg.Slug)
		}
		group := models.Group{
			Title:       cfg.Title,
			Slug:        cfg.Slug,
			Description: cfg.Description,
		}
		if err := database.C.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "updated_at"}),
		}).Create(&group).Error; err != nil {
			return fmt.Errorf("unable to ensure group %s: %v", cfg.Slug, err)
		}
	}
	return nil
}

func ReadGroupConfig() []GroupConfig {
	var configs []GroupConfig
	if err := viper.UnmarshalKey("groups", &configs); err != nil {
		log.Error().Err(err).Msg("Failed to load group config...")
	}
	log.Info().Int("count", len(configs)).Msg("Loaded group config!")
	return configs
}
