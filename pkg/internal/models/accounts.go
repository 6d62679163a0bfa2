package models

import "strings"

type Account struct {
	BaseModel

	Name      string `json:"name" gorm:"uniqueIndex;size:150"`
	FirstName string `json:"first_name" gorm:"size:150"`
	LastName  string `json:"last_name" gorm:"size:150"`
	Password  string `json:"-"`
}

// FullName joins the first and last name, empty when neither is set.
func (v Account) FullName() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

func (v Account) String() string {
	return v.Name
}
