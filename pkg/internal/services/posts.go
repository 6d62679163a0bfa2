package services

import (
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const PostListOrder = "created_at DESC, id DESC"

func FilterPostWithGroup(tx *gorm.DB, group models.Group) *gorm.DB {
	return tx.Where("group_id = ?", group.ID)
}

func FilterPostWithAuthor(tx *gorm.DB, author models.Account) *gorm.DB {
	return tx.Where("author_id = ?", author.ID)
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Group")
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadGeneral(tx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func ListPost(tx *gorm.DB, take int, offset int) ([]models.Post, error) {
	var items []models.Post
	if err := PreloadGeneral(tx).
		Limit(take).Offset(offset).
		Order(PostListOrder).
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

// ListPostPage counts the filtered posts and loads the requested page.
func ListPostPage(tx *gorm.DB, rawPage string) (Page[models.Post], error) {
	tx = tx.Session(&gorm.Session{})

	count, err := CountPost(tx)
	if err != nil {
		return Page[models.Post]{}, err
	}

	paginator := Paginator{Count: count, PerPage: PageSize()}
	number := paginator.Number(rawPage)
	items, err := ListPost(tx, paginator.PerPage, paginator.Offset(number))
	if err != nil {
		return Page[models.Post]{}, err
	}

	return WithData(paginator.Page(number), items), nil
}

func NewPost(author models.Account, item models.Post) (models.Post, error) {
	if len(item.Text) == 0 {
		return item, fmt.Errorf("post text cannot be empty")
	}

	item.AuthorID = author.ID
	item.Language = DetectLanguage(item.Text)

	log.Debug().Uint("author", author.ID).Msg("Posting a post...")
	start := time.Now()

	if err := database.C.Omit(clause.Associations).Create(&item).Error; err != nil {
		return item, err
	}

	item.Author = author
	log.Debug().Dur("elapsed", time.Since(start)).Uint("id", item.ID).Msg("The post is posted.")
	return item, nil
}

func EditPost(item models.Post) (models.Post, error) {
	if len(item.Text) == 0 {
		return item, fmt.Errorf("post text cannot be empty")
	}

	item.Language = DetectLanguage(item.Text)

	err := database.C.Omit(clause.Associations).Save(&item).Error

	return item, err
}

func DeletePost(item models.Post) error {
	return database.C.Delete(&item).Error
}
