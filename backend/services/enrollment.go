package services

import (
	"encoding/json"
	"errors"
	"math"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"studylog/backend/models"
)

// EnrollmentStore holds each user's enrolled courses, progress percentages and
// completed-lesson sets. Reads on users with no rows return empty values; only
// transport failures surface as errors.
type EnrollmentStore interface {
	Enroll(userID uint, courseID string) error
	SetProgress(userID uint, courseID string, percentage int) error
	SetCompletedLessons(userID uint, courseID string, lessonIDs []string) (int, error)
	GetEnrolled(userID uint) ([]string, error)
	GetProgress(userID uint) (map[string]int, error)
	GetCompletedLessons(userID uint, courseID string) ([]string, error)
}

type GormEnrollmentStore struct {
	DB      *gorm.DB
	Catalog CourseCatalog
}

func NewGormEnrollmentStore(db *gorm.DB, catalog CourseCatalog) *GormEnrollmentStore {
	return &GormEnrollmentStore{DB: db, Catalog: catalog}
}

// Enroll adds the course to the user's enrolled set with progress 0. Enrolling
// twice is a no-op.
func (es *GormEnrollmentStore) Enroll(userID uint, courseID string) error {
	var existing models.Enrollment
	err := es.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storeErr(err)
	}

	enrollment := models.Enrollment{
		UserID:           userID,
		CourseID:         courseID,
		Progress:         0,
		CompletedLessons: datatypes.JSON([]byte(`[]`)),
	}
	if err := es.DB.Create(&enrollment).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// SetProgress overwrites the stored percentage as-is. Callers supply 0-100;
// derivation via SetCompletedLessons is the preferred source of truth.
func (es *GormEnrollmentStore) SetProgress(userID uint, courseID string, percentage int) error {
	if err := es.Enroll(userID, courseID); err != nil {
		return err
	}
	err := es.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("progress", percentage).Error
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// SetCompletedLessons replaces the completed set for the course and rewrites
// progress as round(100 * completed / total), looked up from the catalog.
func (es *GormEnrollmentStore) SetCompletedLessons(userID uint, courseID string, lessonIDs []string) (int, error) {
	course, err := es.Catalog.GetCourse(courseID)
	if err != nil {
		return 0, err
	}
	total := len(course.Lessons)
	if total == 0 {
		return 0, ErrCourseNotFound
	}

	if lessonIDs == nil {
		lessonIDs = []string{}
	}
	raw, err := json.Marshal(lessonIDs)
	if err != nil {
		return 0, storeErr(err)
	}
	progress := int(math.Round(float64(len(lessonIDs)) / float64(total) * 100))

	if err := es.Enroll(userID, courseID); err != nil {
		return 0, err
	}
	err = es.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(map[string]interface{}{
			"completed_lessons": datatypes.JSON(raw),
			"progress":          progress,
		}).Error
	if err != nil {
		return 0, storeErr(err)
	}
	return progress, nil
}

func (es *GormEnrollmentStore) GetEnrolled(userID uint) ([]string, error) {
	var courseIDs []string
	err := es.DB.Model(&models.Enrollment{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("course_id", &courseIDs).Error
	if err != nil {
		return nil, storeErr(err)
	}
	if courseIDs == nil {
		courseIDs = []string{}
	}
	return courseIDs, nil
}

func (es *GormEnrollmentStore) GetProgress(userID uint) (map[string]int, error) {
	var enrollments []models.Enrollment
	if err := es.DB.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return nil, storeErr(err)
	}
	progress := make(map[string]int, len(enrollments))
	for _, e := range enrollments {
		progress[e.CourseID] = e.Progress
	}
	return progress, nil
}

func (es *GormEnrollmentStore) GetCompletedLessons(userID uint, courseID string) ([]string, error) {
	var enrollment models.Enrollment
	err := es.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, storeErr(err)
	}
	if len(enrollment.CompletedLessons) == 0 {
		return []string{}, nil
	}
	var lessonIDs []string
	if err := json.Unmarshal(enrollment.CompletedLessons, &lessonIDs); err != nil {
		return nil, storeErr(err)
	}
	if lessonIDs == nil {
		lessonIDs = []string{}
	}
	return lessonIDs, nil
}
