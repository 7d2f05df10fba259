package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	DisplayName  string
	// Last calendar day (YYYY-MM-DD) on which a login was recorded.
	LastLoginDate string
}
