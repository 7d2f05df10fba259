package models

import "time"

// Course is seeded content, keyed by an opaque slug ("html-css").
// Courses and lessons are not user-editable.
type Course struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Description string
	Lessons     []Lesson `gorm:"foreignKey:CourseID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Lesson struct {
	ID            string `gorm:"primaryKey"`
	CourseID      string `gorm:"index"`
	Title         string
	Type          string // "document" or "video"
	Content       string
	VideoURL      string
	SequenceOrder int
}
