package models

import "time"

// BaseModel is embedded by every table. Rows are hard deleted so the
// foreign key actions declared on the relations stay in charge of cleanup.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"<-:create"`
	UpdatedAt time.Time `json:"updated_at"`
}
