package services

import (
	"errors"
	"fmt"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetFollow(user models.Account, author models.Account) (*models.Follow, error) {
	var follow models.Follow
	if err := database.C.Where("follower_id = ? AND author_id = ?", user.ID, author.ID).First(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to get follow: %v", err)
	}
	return &follow, nil
}

func IsFollowing(user models.Account, author models.Account) (bool, error) {
	follow, err := GetFollow(user, author)
	if err != nil {
		return false, err
	}
	return follow != nil, nil
}

// FollowAccount creates the edge user -> author when it is missing.
// Following yourself is ignored. Reports whether a new edge was created.
func FollowAccount(user models.Account, author models.Account) (bool, error) {
	if user.ID == author.ID {
		return false, nil
	}

	follow := models.Follow{
		FollowerID: user.ID,
		AuthorID:   author.ID,
	}
	tx := database.C.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow)
	if tx.Error != nil {
		return false, tx.Error
	}

	if tx.RowsAffected > 0 {
		log.Debug().Uint("follower", user.ID).Uint("author", author.ID).Msg("Account followed.")
	}
	return tx.RowsAffected > 0, nil
}

// UnfollowAccount removes the edge user -> author, doing nothing if absent.
func UnfollowAccount(user models.Account, author models.Account) error {
	return database.C.
		Where("follower_id = ? AND author_id = ?", user.ID, author.ID).
		Delete(&models.Follow{}).Error
}

func CountFollowers(author models.Account) (int64, error) {
	var count int64
	err := database.C.Model(&models.Follow{}).Where("author_id = ?", author.ID).Count(&count).Error
	return count, err
}

func CountFollowing(user models.Account) (int64, error) {
	var count int64
	err := database.C.Model(&models.Follow{}).Where("follower_id = ?", user.ID).Count(&count).Error
	return count, err
}
