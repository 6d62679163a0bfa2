package services

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"gorm.io/gorm"
)

// FilterPostWithFollowing keeps the posts of every author the user follows.
func FilterPostWithFollowing(tx *gorm.DB, user models.Account) *gorm.DB {
	following := database.C.
		Model(&models.Follow{}).
		Select("author_id").
		Where("follower_id = ?", user.ID)
	return tx.Where("author_id IN (?)", following)
}

func GetFeed(user models.Account, rawPage string) (Page[models.Post], error) {
	return ListPostPage(FilterPostWithFollowing(database.C, user), rawPage)
}
