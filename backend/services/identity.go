package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studylog/backend/models"
)

// Identity exchanges credentials for a stable user record. Rejected or unknown
// credentials surface as ErrAuthFailed; the caller never learns which.
type Identity interface {
	Register(username, email, password, displayName string) (*models.User, error)
	SignIn(username, password string) (*models.User, error)
}

type GormIdentity struct {
	DB *gorm.DB
}

func NewGormIdentity(db *gorm.DB) *GormIdentity {
	return &GormIdentity{DB: db}
}

func (gi *GormIdentity) Register(username, email, password, displayName string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrAuthFailed
	}
	if displayName == "" {
		displayName = username
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		DisplayName:  displayName,
	}
	if err := gi.DB.Create(&user).Error; err != nil {
		return nil, storeErr(err)
	}
	return &user, nil
}

func (gi *GormIdentity) SignIn(username, password string) (*models.User, error) {
	var user models.User
	if err := gi.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthFailed
		}
		return nil, storeErr(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthFailed
	}
	return &user, nil
}
