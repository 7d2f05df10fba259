package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment is one row per (user, course). The set of a user's rows is the
// enrolled set; Progress is an integer percentage 0-100; CompletedLessons is a
// JSON array of lesson IDs.
type Enrollment struct {
	gorm.Model
	UserID           uint   `gorm:"index;uniqueIndex:idx_user_course;not null"`
	CourseID         string `gorm:"uniqueIndex:idx_user_course;not null"`
	Progress         int    `gorm:"default:0"`
	CompletedLessons datatypes.JSON
}
