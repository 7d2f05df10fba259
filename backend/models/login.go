package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LoginMonth is one row per (user, "YYYY-MM"). Days is a JSON array of
// day-of-month integers, appended at most once per day.
type LoginMonth struct {
	gorm.Model
	UserID    uint   `gorm:"uniqueIndex:idx_user_month;not null"`
	YearMonth string `gorm:"uniqueIndex:idx_user_month;not null"`
	Days      datatypes.JSON
}
