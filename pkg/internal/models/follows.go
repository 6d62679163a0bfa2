package models

// Follow is a directed subscription edge from Follower to Author.
// The pair is unique, so a second follow of the same author is a no-op.
type Follow struct {
	BaseModel

	FollowerID uint    `json:"follower_id" gorm:"not null;uniqueIndex:idx_follow_pair,priority:1"`
	Follower   Account `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID   uint    `json:"author_id" gorm:"not null;uniqueIndex:idx_follow_pair,priority:2;index"`
	Author     Account `json:"author" gorm:"constraint:OnDelete:CASCADE"`
}
