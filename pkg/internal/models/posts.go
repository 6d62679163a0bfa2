package models

const PostPreviewLength = 15

type Post struct {
	BaseModel

	Text     string `json:"text"`
	Language string `json:"language"`
	Image    string `json:"image"`

	AuthorID uint    `json:"author_id" gorm:"not null;index"`
	Author   Account `json:"author" gorm:"constraint:OnDelete:CASCADE"`

	GroupID *uint  `json:"group_id" gorm:"index"`
	Group   *Group `json:"group,omitempty" gorm:"constraint:OnDelete:SET NULL"`
}

// String returns the first PostPreviewLength characters of the text.
func (v Post) String() string {
	runes := []rune(v.Text)
	if len(runes) > PostPreviewLength {
		return string(runes[:PostPreviewLength])
	}
	return v.Text
}
