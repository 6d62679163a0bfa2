package models

type Comment struct {
	BaseModel

	Text string `json:"text"`

	PostID uint `json:"post_id" gorm:"not null;index"`
	Post   Post `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	AuthorID uint    `json:"author_id" gorm:"not null;index"`
	Author   Account `json:"author" gorm:"constraint:OnDelete:CASCADE"`
}
