package services

import (
	"fmt"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"gorm.io/gorm/clause"
)

func ListComment(post models.Post) ([]models.Comment, error) {
	var comments []models.Comment
	if err := database.C.
		Where("post_id = ?", post.ID).
		Preload("Author").
		Order("created_at DESC, id DESC").
		Find(&comments).Error; err != nil {
		return comments, err
	}
	return comments, nil
}

func CountComment(post models.Post) (int64, error) {
	var count int64
	err := database.C.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error
	return count, err
}

func NewComment(author models.Account, post models.Post, text string) (models.Comment, error) {
	comment := models.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: author.ID,
	}
	if len(comment.Text) == 0 {
		return comment, fmt.Errorf("comment text cannot be empty")
	}

	if err := database.C.Omit(clause.Associations).Create(&comment).Error; err != nil {
		return comment, err
	}

	comment.Author = author
	return comment, nil
}
