package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListCoursesFallsBackToSamplesWhenEmpty(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewGormCatalog(db)

	courses, err := catalog.ListCourses()
	assert.NoError(t, err)
	assert.Len(t, courses, 3)
	for _, course := range courses {
		assert.Len(t, course.Lessons, 3)
	}
}

func TestListCoursesAfterSeed(t *testing.T) {
	db := setupTestDB(t)
	catalog := seededCatalog(t, db)

	courses, err := catalog.ListCourses()
	assert.NoError(t, err)
	assert.Len(t, courses, 3)

	ids := make([]string, 0, len(courses))
	for _, course := range courses {
		ids = append(ids, course.ID)
	}
	assert.ElementsMatch(t, []string{"html-css", "javascript", "react"}, ids)
}

func TestGetCourseReturnsLessonsInOrder(t *testing.T) {
	db := setupTestDB(t)
	catalog := seededCatalog(t, db)

	course, err := catalog.GetCourse("html-css")
	assert.NoError(t, err)
	assert.Equal(t, "HTML/CSS入門", course.Title)
	assert.Len(t, course.Lessons, 3)
	assert.Equal(t, "html-css-lesson-1", course.Lessons[0].ID)
	assert.Equal(t, "video", course.Lessons[2].Type)
}

func TestGetCourseUnknownID(t *testing.T) {
	db := setupTestDB(t)
	catalog := seededCatalog(t, db)

	_, err := catalog.GetCourse("no-such-course")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	catalog := seededCatalog(t, db)
	assert.NoError(t, catalog.Seed())

	courses, err := catalog.ListCourses()
	assert.NoError(t, err)
	assert.Len(t, courses, 3)
}
