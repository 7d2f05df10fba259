package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"studylog/backend/models"
)

// CourseCatalog reads the seeded course set. Courses are immutable at runtime.
type CourseCatalog interface {
	ListCourses() ([]models.Course, error)
	GetCourse(courseID string) (*models.Course, error)
}

type GormCatalog struct {
	DB *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{DB: db}
}

// ListCourses returns every seeded course with its lessons. An empty courses
// table is not an error: the built-in sample set is returned instead.
func (gc *GormCatalog) ListCourses() ([]models.Course, error) {
	var courses []models.Course
	if err := gc.DB.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order ASC")
	}).Find(&courses).Error; err != nil {
		return nil, storeErr(err)
	}
	if len(courses) == 0 {
		return SampleCourses(), nil
	}
	return courses, nil
}

func (gc *GormCatalog) GetCourse(courseID string) (*models.Course, error) {
	var course models.Course
	err := gc.DB.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order ASC")
	}).First(&course, "id = ?", courseID).Error
	if err == nil {
		return &course, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(err)
	}
	// The table may be unseeded while the built-in set is still served.
	for _, sample := range SampleCourses() {
		if sample.ID == courseID {
			c := sample
			return &c, nil
		}
	}
	return nil, ErrCourseNotFound
}

// SampleCourses is the built-in course set served when the database holds no
// courses, and the data used to seed it.
func SampleCourses() []models.Course {
	courses := []models.Course{
		{ID: "html-css", Title: "HTML/CSS入門", Description: "ウェブの基礎となるHTML/CSSを学びます。"},
		{ID: "javascript", Title: "JavaScript基礎", Description: "プログラミングの基礎とJavaScriptの文法を学びます。"},
		{ID: "react", Title: "React入門", Description: "モダンなUIライブラリであるReactの基礎を学びます。"},
	}
	for i := range courses {
		courses[i].Lessons = sampleLessons(courses[i].ID, courses[i].Title)
	}
	return courses
}

func sampleLessons(courseID, courseTitle string) []models.Lesson {
	return []models.Lesson{
		{
			ID:            fmt.Sprintf("%s-lesson-1", courseID),
			CourseID:      courseID,
			Title:         "入門編",
			Type:          "document",
			Content:       fmt.Sprintf("# %s 入門編\n\n基本的な概念について学びます。", courseTitle),
			SequenceOrder: 1,
		},
		{
			ID:            fmt.Sprintf("%s-lesson-2", courseID),
			CourseID:      courseID,
			Title:         "基本文法",
			Type:          "document",
			Content:       fmt.Sprintf("# %s 基本文法\n\nデータ型、制御構造、関数について学びます。", courseTitle),
			SequenceOrder: 2,
		},
		{
			ID:            fmt.Sprintf("%s-lesson-3", courseID),
			CourseID:      courseID,
			Title:         "実践編",
			Type:          "video",
			VideoURL:      "https://www.youtube.com/embed/W6NZfCO5SIk",
			Content:       fmt.Sprintf("# %s 実践編\n\n実際のプロジェクト例を通して学びます。", courseTitle),
			SequenceOrder: 3,
		},
	}
}

// Seed writes the sample course set if the courses table is empty.
func (gc *GormCatalog) Seed() error {
	var count int64
	if err := gc.DB.Model(&models.Course{}).Count(&count).Error; err != nil {
		return storeErr(err)
	}
	if count > 0 {
		return nil
	}
	for _, course := range SampleCourses() {
		if err := gc.DB.Create(&course).Error; err != nil {
			return storeErr(err)
		}
	}
	return nil
}
