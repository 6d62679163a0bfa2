package models

type Group struct {
	BaseModel

	Title       string `json:"title" gorm:"uniqueIndex;size:200"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:50"`
	Description string `json:"description"`
}

func (v Group) String() string {
	return v.Title
}
