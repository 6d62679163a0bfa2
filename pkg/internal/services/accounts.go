package services

import (
	"errors"
	"fmt"
	"regexp"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAccountExists      = errors.New("account with this name already exists")
	ErrInvalidCredentials = errors.New("invalid account name or password")
)

var accountNamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func GetAccountWithID(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, fmt.Errorf("unable to get account by id: %w", err)
	}
	return account, nil
}

func GetAccountByName(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		return account, fmt.Errorf("unable to get account by name: %w", err)
	}
	return account, nil
}

func NewAccount(name, password, firstName, lastName string) (models.Account, error) {
	account := models.Account{
		Name:      name,
		FirstName: firstName,
		LastName:  lastName,
	}
	if !accountNamePattern.MatchString(name) {
		return account, fmt.Errorf("invalid account name, only letters, digits and @.+-_ are allowed")
	}

	var count int64
	if err := database.C.Model(&models.Account{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return account, fmt.Errorf("unable to count existing account: %v", err)
	} else if count > 0 {
		return account, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return account, err
	}
	account.Password = string(hash)

	if err := database.C.Create(&account).Error; err != nil {
		return account, err
	}
	log.Info().Uint("id", account.ID).Str("name", account.Name).Msg("A new account has been created.")
	return account, nil
}

func AuthenticateAccount(name, password string) (models.Account, error) {
	account, err := GetAccountByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, ErrInvalidCredentials
		}
		return account, err
	}
	if len(account.Password) == 0 {
		return account, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return account, ErrInvalidCredentials
	}
	return account, nil
}

// DeleteAccount removes the account. Posts, comments and follow edges
// go with it through the foreign key cascades.
func DeleteAccount(account models.Account) error {
	return database.C.Delete(&account).Error
}
